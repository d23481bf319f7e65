package services

import (
	"context"
	"fmt"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/logger"
	"watchboard/internal/models"
	"watchboard/internal/store"
)

// watchlistService handles watchlist business logic on top of a store.
type watchlistService struct {
	store  store.WatchlistStore
	market MarketData
}

// NewWatchlistService creates a new WatchlistServicer.
func NewWatchlistService(s store.WatchlistStore, market MarketData) WatchlistServicer {
	return &watchlistService{store: s, market: market}
}

// List returns the items in display order.
func (s *watchlistService) List(ctx context.Context) ([]models.WatchlistItem, error) {
	return s.store.List(ctx)
}

// Get returns a single item.
func (s *watchlistService) Get(ctx context.Context, ticker string) (*models.WatchlistItem, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}
	return s.store.Get(ctx, ticker)
}

// Add appends ticker to the watchlist. A .TW ticker that only trades on TPEx
// is stored under its .TWO symbol.
func (s *watchlistService) Add(ctx context.Context, ticker string) (*models.WatchlistItem, error) {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker is required")
	}

	if resolved := s.market.ResolveListing(ctx, ticker); resolved != ticker {
		logger.Get().Infow("ticker resolved to TPEx listing", "ticker", ticker, "resolved", resolved)
		ticker = resolved
	}

	item, err := s.store.Add(ctx, models.NewWatchlistItem(ticker))
	if err != nil {
		return nil, err
	}
	logger.Get().Infow("ticker added", "ticker", item.Ticker)
	return item, nil
}

// Update replaces the editable fields of ticker.
func (s *watchlistService) Update(ctx context.Context, ticker string, update models.ItemUpdate) (*models.WatchlistItem, error) {
	ticker = models.NormalizeTicker(ticker)
	if err := validateUpdate(update); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, ticker, update)
}

// Remove deletes ticker. Removing a ticker that is not listed is a no-op.
func (s *watchlistService) Remove(ctx context.Context, ticker string) (bool, error) {
	ticker = models.NormalizeTicker(ticker)
	removed, err := s.store.Remove(ctx, ticker)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Get().Infow("ticker removed", "ticker", ticker)
	}
	return removed, nil
}

// Reorder persists tickers as the new display order.
func (s *watchlistService) Reorder(ctx context.Context, tickers []string) error {
	normalized := make([]string, len(tickers))
	for i, t := range tickers {
		normalized[i] = models.NormalizeTicker(t)
	}
	return s.store.Reorder(ctx, normalized)
}

func validateUpdate(u models.ItemUpdate) error {
	if u.Rating < 0 || u.Rating > models.MaxRating {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Rating must be between 0 and %d", models.MaxRating))
	}
	if u.AvgCost < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Average cost cannot be negative")
	}
	if u.Shares < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Shares cannot be negative")
	}
	return nil
}
