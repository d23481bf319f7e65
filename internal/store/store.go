// Package store persists the watchlist and dashboard settings. The watchlist
// lives either in a local JSON file or in a relational table; both satisfy
// WatchlistStore and keep items in display order.
package store

import (
	"context"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/models"
)

// WatchlistStore is the persistence contract for watchlist items. Tickers are
// unique; List returns items in display order with DisplayOrder equal to the
// item's position.
type WatchlistStore interface {
	List(ctx context.Context) ([]models.WatchlistItem, error)
	Get(ctx context.Context, ticker string) (*models.WatchlistItem, error)
	// Add appends item at the end of the list. It fails with
	// ErrDuplicateTicker, leaving the store untouched, when the ticker exists.
	Add(ctx context.Context, item models.WatchlistItem) (*models.WatchlistItem, error)
	// Remove deletes ticker and reports whether it was present. Removing a
	// missing ticker is a no-op.
	Remove(ctx context.Context, ticker string) (bool, error)
	Update(ctx context.Context, ticker string, upd models.ItemUpdate) (*models.WatchlistItem, error)
	// Reorder persists tickers as the new display order. The input must be a
	// permutation of the stored tickers.
	Reorder(ctx context.Context, tickers []string) error
	// ReplaceAll overwrites the whole watchlist with items, in order.
	ReplaceAll(ctx context.Context, items []models.WatchlistItem) error
}

// validateOrder checks that order names every ticker in current exactly once.
func validateOrder(current, order []string) error {
	if len(order) != len(current) {
		return apperrors.ErrInvalidOrder
	}
	want := make(map[string]bool, len(current))
	for _, t := range current {
		want[t] = true
	}
	for _, t := range order {
		if !want[t] {
			return apperrors.ErrInvalidOrder
		}
		delete(want, t)
	}
	return nil
}

// dedupe keeps the first item for each ticker and drops items without one.
func dedupe(items []models.WatchlistItem) []models.WatchlistItem {
	out := make([]models.WatchlistItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Ticker == "" || seen[item.Ticker] {
			continue
		}
		seen[item.Ticker] = true
		out = append(out, item)
	}
	return out
}

// renumber sets DisplayOrder to each item's position.
func renumber(items []models.WatchlistItem) {
	for i := range items {
		items[i].DisplayOrder = i
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
	}
}
