package services

import (
	"context"
	"strings"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/marketdata"
	"watchboard/internal/models"
)

// QuoteView is a quote enriched with the ticker's market and display name.
type QuoteView struct {
	Ticker      string            `json:"ticker"`
	Symbol      string            `json:"symbol"`
	Market      models.MarketType `json:"market"`
	DisplayName string            `json:"display_name"`
	Price       float64           `json:"price"`
	Currency    string            `json:"currency"`
	ShortName   string            `json:"short_name,omitempty"`
	LongName    string            `json:"long_name,omitempty"`
}

// FXView is an exchange rate for a Yahoo FX pair.
type FXView struct {
	Pair string  `json:"pair"`
	Rate float64 `json:"rate"`
}

type quoteService struct {
	market MarketData
	names  SymbolNamer
}

// NewQuoteService creates a new QuoteServicer.
func NewQuoteService(market MarketData, names SymbolNamer) QuoteServicer {
	return &quoteService{market: market, names: names}
}

// Quote returns the latest quote for ticker or ErrNoData.
func (s *quoteService) Quote(ctx context.Context, ticker string) (*QuoteView, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}

	q, ok := s.market.Quote(ctx, ticker)
	if !ok {
		return nil, apperrors.ErrNoData
	}

	currency := q.Currency
	if currency == "" {
		currency = currencyOf(models.MarketTypeOf(ticker))
	}
	return &QuoteView{
		Ticker:      ticker,
		Symbol:      q.Symbol,
		Market:      models.MarketTypeOf(ticker),
		DisplayName: s.names.DisplayName(models.NewWatchlistItem(ticker), q.ShortName, q.LongName),
		Price:       q.Price,
		Currency:    currency,
		ShortName:   q.ShortName,
		LongName:    q.LongName,
	}, nil
}

// History returns ticker's bars over period or ErrNoData.
func (s *quoteService) History(ctx context.Context, ticker string, period models.Period) ([]marketdata.Bar, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	if period == "" {
		period = models.DefaultPeriod
	}
	if !period.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown period")
	}

	bars := s.market.History(ctx, ticker, period)
	if len(bars) == 0 {
		return nil, apperrors.ErrNoData
	}
	return bars, nil
}

// FXRate returns the rate for pair, e.g. "USDTWD=X".
func (s *quoteService) FXRate(ctx context.Context, pair string) (*FXView, error) {
	pair = strings.ToUpper(strings.TrimSpace(pair))
	if pair == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Pair is required")
	}
	if !strings.HasSuffix(pair, "=X") {
		pair += "=X"
	}

	rate, ok := s.market.FXRate(ctx, pair)
	if !ok {
		return nil, apperrors.ErrNoData
	}
	return &FXView{Pair: pair, Rate: rate}, nil
}
