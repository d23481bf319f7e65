package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/models"
)

// SQLStore keeps the watchlist in the watchlist_items table.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a SQLStore on db. The table must already exist, either
// through the SQL migrations or AutoMigrate.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// List returns all items ordered by display_order.
func (s *SQLStore) List(ctx context.Context) ([]models.WatchlistItem, error) {
	entries, err := s.entries(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	items := make([]models.WatchlistItem, len(entries))
	for i, e := range entries {
		items[i] = e.Item()
	}
	renumber(items)
	return items, nil
}

// Get returns the item for ticker.
func (s *SQLStore) Get(ctx context.Context, ticker string) (*models.WatchlistItem, error) {
	entry, err := s.find(s.db.WithContext(ctx), ticker)
	if err != nil {
		return nil, err
	}
	item := entry.Item()
	return &item, nil
}

// Add inserts item after the last row.
func (s *SQLStore) Add(ctx context.Context, item models.WatchlistItem) (*models.WatchlistItem, error) {
	var created models.WatchlistEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.WatchlistEntry{}).Where("ticker = ?", item.Ticker).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateTicker
		}

		var next int64
		if err := tx.Model(&models.WatchlistEntry{}).Count(&next).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		created = models.EntryFromItem(item)
		created.DisplayOrder = int(next)
		if err := tx.Create(&created).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicateTicker
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Item()
	return &out, nil
}

// Remove deletes ticker and closes the gap it leaves in display_order.
func (s *SQLStore) Remove(ctx context.Context, ticker string) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("ticker = ?", ticker).Delete(&models.WatchlistEntry{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true

		entries, err := s.entries(tx)
		if err != nil {
			return err
		}
		order := make([]string, len(entries))
		for i, e := range entries {
			order[i] = e.Ticker
		}
		return writeOrder(tx, order)
	})
	return removed, err
}

// Update overwrites the editable fields of ticker.
func (s *SQLStore) Update(ctx context.Context, ticker string, upd models.ItemUpdate) (*models.WatchlistItem, error) {
	var updated models.WatchlistItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.find(tx, ticker)
		if err != nil {
			return err
		}
		item := entry.Item()
		upd.Apply(&item)

		fields := map[string]interface{}{
			"custom_name":     item.CustomName,
			"note":            item.Note,
			"rating":          item.Rating,
			"yahoo_url":       item.YahooURL,
			"tradingview_url": item.TradingViewURL,
			"avg_cost":        item.AvgCost,
			"shares":          item.Shares,
			"tags":            models.TagList(item.Tags),
		}
		if err := tx.Model(entry).Updates(fields).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Reorder rewrites display_order to match tickers.
func (s *SQLStore) Reorder(ctx context.Context, tickers []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := s.entries(tx)
		if err != nil {
			return err
		}
		current := make([]string, len(entries))
		for i, e := range entries {
			current[i] = e.Ticker
		}
		if err := validateOrder(current, tickers); err != nil {
			return err
		}
		return writeOrder(tx, tickers)
	})
}

// ReplaceAll deletes every row and inserts items in order.
func (s *SQLStore) ReplaceAll(ctx context.Context, items []models.WatchlistItem) error {
	items = dedupe(items)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.WatchlistEntry{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i, item := range items {
			entry := models.EntryFromItem(item)
			entry.DisplayOrder = i
			if err := tx.Create(&entry).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) entries(db *gorm.DB) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := db.Order("display_order ASC").Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

func (s *SQLStore) find(db *gorm.DB, ticker string) (*models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	if err := db.Where("ticker = ?", ticker).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTickerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

func writeOrder(tx *gorm.DB, tickers []string) error {
	for i, t := range tickers {
		err := tx.Model(&models.WatchlistEntry{}).
			Where("ticker = ?", t).
			Update("display_order", i).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
