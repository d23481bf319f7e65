package testutil

import (
	"errors"
	"testing"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertTickers checks that items carry exactly the given tickers in order and
// that every DisplayOrder matches its position.
func AssertTickers(t *testing.T, items []models.WatchlistItem, want ...string) {
	t.Helper()

	if len(items) != len(want) {
		t.Fatalf("expected %d items %v, got %d: %v", len(want), want, len(items), Tickers(items))
	}
	for i, item := range items {
		if item.Ticker != want[i] {
			t.Errorf("position %d: expected %s, got %s (all: %v)", i, want[i], item.Ticker, Tickers(items))
		}
		if item.DisplayOrder != i {
			t.Errorf("position %d: %s has display_order %d", i, item.Ticker, item.DisplayOrder)
		}
	}
}

// Tickers returns the tickers of items in order.
func Tickers(items []models.WatchlistItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Ticker
	}
	return out
}
