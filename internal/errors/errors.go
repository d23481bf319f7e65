// Package errors provides the structured error type returned by services.
// Handlers turn an AppError into a JSON envelope without leaking the
// internal cause.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is matches copies made by Wrap and WithMessage against a sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Watchlist errors.
var (
	ErrDuplicateTicker = &AppError{Code: "DUPLICATE_TICKER", Message: "Ticker already in watchlist.", StatusCode: http.StatusConflict}
	ErrTickerNotFound  = &AppError{Code: "TICKER_NOT_FOUND", Message: "Ticker not in watchlist.", StatusCode: http.StatusNotFound}
	ErrInvalidOrder    = &AppError{Code: "INVALID_ORDER", Message: "Order must list every watchlist ticker exactly once.", StatusCode: http.StatusBadRequest}
)

// Market data errors.
var (
	ErrNoData = &AppError{Code: "NO_DATA", Message: "No Data", StatusCode: http.StatusNotFound}
)
