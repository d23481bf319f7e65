package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"watchboard/internal/models"

	"gorm.io/gorm"
)

// CreateTestEntry inserts a watchlist row for ticker at the given position.
func CreateTestEntry(t *testing.T, db *gorm.DB, ticker string, order int) *models.WatchlistEntry {
	t.Helper()

	entry := models.EntryFromItem(models.NewWatchlistItem(ticker))
	entry.DisplayOrder = order
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to create test entry %s: %v", ticker, err)
	}
	return &entry
}

// NewHolding returns an item with a cost basis and quantity.
func NewHolding(ticker string, avgCost, shares float64, tags ...string) models.WatchlistItem {
	item := models.NewWatchlistItem(ticker)
	item.AvgCost = avgCost
	item.Shares = shares
	item.Tags = models.NormalizeTags(tags)
	return item
}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(raw)
}
