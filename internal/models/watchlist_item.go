package models

import "strings"

// MaxRating is the highest star rating an item can carry.
const MaxRating = 5

// WatchlistItem is one ticker record in the watchlist. The JSON shape is the
// one persisted in watchlist.json and returned by the API.
type WatchlistItem struct {
	Ticker         string   `json:"ticker"`
	CustomName     string   `json:"custom_name"`
	Note           string   `json:"note"`
	Rating         int      `json:"rating"`
	YahooURL       string   `json:"yahoo_url"`
	TradingViewURL string   `json:"tradingview_url"`
	AvgCost        float64  `json:"avg_cost"`
	Shares         float64  `json:"shares"`
	Tags           []string `json:"tags"`
	DisplayOrder   int      `json:"display_order"`
}

// NewWatchlistItem returns an item for ticker with every other field at its
// default value.
func NewWatchlistItem(ticker string) WatchlistItem {
	return WatchlistItem{Ticker: ticker, Tags: []string{}}
}

// IsHolding reports whether the item has a recorded cost basis and quantity.
func (i WatchlistItem) IsHolding() bool {
	return i.AvgCost > 0 && i.Shares > 0
}

// HasTag reports whether the item carries tag.
func (i WatchlistItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with i.
func (i WatchlistItem) Clone() WatchlistItem {
	c := i
	c.Tags = append([]string{}, i.Tags...)
	return c
}

// ItemUpdate carries the editable fields of an item. Ticker and display order
// are not editable through an update.
type ItemUpdate struct {
	CustomName     string
	Note           string
	Rating         int
	YahooURL       string
	TradingViewURL string
	AvgCost        float64
	Shares         float64
	Tags           []string
}

// Apply copies the update onto item.
func (u ItemUpdate) Apply(item *WatchlistItem) {
	item.CustomName = u.CustomName
	item.Note = u.Note
	item.Rating = u.Rating
	item.YahooURL = u.YahooURL
	item.TradingViewURL = u.TradingViewURL
	item.AvgCost = u.AvgCost
	item.Shares = u.Shares
	item.Tags = NormalizeTags(u.Tags)
}

// NormalizeTags trims labels and drops blanks and duplicates, keeping the
// first occurrence order. It never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
