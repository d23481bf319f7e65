package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TagList stores item tags as a JSON array in a text column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	if len(raw) == 0 {
		*t = TagList{}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("decoding tags column: %w", err)
	}
	*t = NormalizeTags(tags)
	return nil
}

// WatchlistEntry is the row form of a WatchlistItem in the remote table.
type WatchlistEntry struct {
	Base
	Ticker         string  `gorm:"not null;uniqueIndex:uq_watchlist_items_ticker"`
	CustomName     string  `gorm:"not null;default:''"`
	Note           string  `gorm:"not null;default:''"`
	Rating         int     `gorm:"not null;default:0"`
	YahooURL       string  `gorm:"column:yahoo_url;not null;default:''"`
	TradingViewURL string  `gorm:"column:tradingview_url;not null;default:''"`
	AvgCost        float64 `gorm:"not null;default:0"`
	Shares         float64 `gorm:"not null;default:0"`
	Tags           TagList `gorm:"type:text;not null;default:'[]'"`
	DisplayOrder   int     `gorm:"not null;default:0;index"`
}

// TableName pins the table name shared with the SQL migrations.
func (WatchlistEntry) TableName() string { return "watchlist_items" }

// Item converts the row to its domain form.
func (e WatchlistEntry) Item() WatchlistItem {
	return WatchlistItem{
		Ticker:         e.Ticker,
		CustomName:     e.CustomName,
		Note:           e.Note,
		Rating:         e.Rating,
		YahooURL:       e.YahooURL,
		TradingViewURL: e.TradingViewURL,
		AvgCost:        e.AvgCost,
		Shares:         e.Shares,
		Tags:           NormalizeTags(e.Tags),
		DisplayOrder:   e.DisplayOrder,
	}
}

// EntryFromItem builds a new row for item.
func EntryFromItem(item WatchlistItem) WatchlistEntry {
	return WatchlistEntry{
		Ticker:         item.Ticker,
		CustomName:     item.CustomName,
		Note:           item.Note,
		Rating:         item.Rating,
		YahooURL:       item.YahooURL,
		TradingViewURL: item.TradingViewURL,
		AvgCost:        item.AvgCost,
		Shares:         item.Shares,
		Tags:           TagList(NormalizeTags(item.Tags)),
		DisplayOrder:   item.DisplayOrder,
	}
}
