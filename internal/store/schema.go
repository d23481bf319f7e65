package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"watchboard/internal/models"
)

// schemaVersion identifies one historical shape of watchlist.json.
type schemaVersion int

const (
	// schemaTickerList is a flat array of ticker strings.
	schemaTickerList schemaVersion = iota + 1
	// schemaLegacyItems is a flat array of possibly partial item objects,
	// possibly mixed with bare ticker strings.
	schemaLegacyItems
	// schemaGroups is an object of named groups, each an array of items or
	// ticker strings.
	schemaGroups
	// schemaCurrent is a flat array of complete item objects.
	schemaCurrent
)

func (v schemaVersion) String() string {
	switch v {
	case schemaTickerList:
		return "v1-ticker-list"
	case schemaLegacyItems:
		return "v2-legacy-items"
	case schemaGroups:
		return "v3-groups"
	case schemaCurrent:
		return "v4-current"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// document is one decoded watchlist file, tagged with its schema version.
// upgrade converts it to the next version in the chain.
type document interface {
	version() schemaVersion
	upgrade() document
}

// currentKeys are exactly the keys of a current item object.
var currentKeys = []string{
	"ticker", "custom_name", "note", "rating", "yahoo_url",
	"tradingview_url", "avg_cost", "shares", "tags", "display_order",
}

type tickerListDoc []string

type legacyEntry struct {
	ticker string
	fields map[string]json.RawMessage // nil for a bare ticker string
}

type legacyItemsDoc []legacyEntry

type group struct {
	name    string
	entries []json.RawMessage
}

// groupsDoc keeps groups in file order; first occurrence wins on flattening.
type groupsDoc []group

type currentDoc []models.WatchlistItem

func (tickerListDoc) version() schemaVersion  { return schemaTickerList }
func (legacyItemsDoc) version() schemaVersion { return schemaLegacyItems }
func (groupsDoc) version() schemaVersion      { return schemaGroups }
func (currentDoc) version() schemaVersion     { return schemaCurrent }

func (d tickerListDoc) upgrade() document {
	out := make(legacyItemsDoc, 0, len(d))
	for _, t := range d {
		out = append(out, legacyEntry{ticker: t})
	}
	return out
}

func (d groupsDoc) upgrade() document {
	var out legacyItemsDoc
	seen := make(map[string]bool)
	for _, g := range d {
		for _, raw := range g.entries {
			entry, ok := decodeLegacyEntry(raw)
			if !ok || seen[entry.ticker] {
				continue
			}
			seen[entry.ticker] = true
			out = append(out, entry)
		}
	}
	return out
}

func (d legacyItemsDoc) upgrade() document {
	items := make([]models.WatchlistItem, 0, len(d))
	for _, e := range d {
		items = append(items, e.migrate())
	}
	items = dedupe(items)
	renumber(items)
	return currentDoc(items)
}

func (d currentDoc) upgrade() document { return d }

// parseDocument classifies raw file content into its schema variant.
func parseDocument(raw []byte) (document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty watchlist document")
	}

	switch raw[0] {
	case '{':
		return parseGroups(raw)
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("decoding watchlist array: %w", err)
		}
		return classifyArray(elems), nil
	default:
		return nil, fmt.Errorf("unrecognised watchlist document starting with %q", raw[0])
	}
}

func classifyArray(elems []json.RawMessage) document {
	if len(elems) == 0 {
		return currentDoc{}
	}

	if tickers, ok := allStrings(elems); ok {
		return tickerListDoc(tickers)
	}

	if items, ok := allCurrent(elems); ok {
		return currentDoc(items)
	}

	out := make(legacyItemsDoc, 0, len(elems))
	for _, raw := range elems {
		if entry, ok := decodeLegacyEntry(raw); ok {
			out = append(out, entry)
		}
	}
	return out
}

func allStrings(elems []json.RawMessage) ([]string, bool) {
	out := make([]string, 0, len(elems))
	for _, raw := range elems {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// allCurrent succeeds only if every element is an object with exactly the
// current key set that decodes strictly into an item, with unique tickers.
func allCurrent(elems []json.RawMessage) ([]models.WatchlistItem, bool) {
	items := make([]models.WatchlistItem, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for _, raw := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || len(fields) != len(currentKeys) {
			return nil, false
		}
		for _, k := range currentKeys {
			if _, ok := fields[k]; !ok {
				return nil, false
			}
		}
		var item models.WatchlistItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, false
		}
		if item.Ticker == "" || seen[item.Ticker] || item.Tags == nil {
			return nil, false
		}
		if item.Rating < 0 || item.Rating > models.MaxRating || item.AvgCost < 0 || item.Shares < 0 {
			return nil, false
		}
		if len(models.NormalizeTags(item.Tags)) != len(item.Tags) {
			return nil, false
		}
		seen[item.Ticker] = true
		items = append(items, item)
	}
	return items, true
}

// parseGroups decodes a groups object while preserving key order.
func parseGroups(raw []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding watchlist groups: %w", err)
	}

	var doc groupsDoc
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding watchlist groups: %w", err)
		}
		name, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoding group %q: %w", name, err)
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil {
			// Non-list group values carried no items.
			continue
		}
		doc = append(doc, group{name: name, entries: entries})
	}
	return doc, nil
}

func decodeLegacyEntry(raw json.RawMessage) (legacyEntry, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return legacyEntry{ticker: s}, s != ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return legacyEntry{}, false
	}
	var ticker string
	if err := json.Unmarshal(fields["ticker"], &ticker); err != nil || ticker == "" {
		return legacyEntry{}, false
	}
	return legacyEntry{ticker: ticker, fields: fields}, true
}

// migrate builds a complete item from the defaults plus every known field the
// entry carries. Fields of the wrong type and unknown keys (such as the
// retired "holding" flag) are dropped.
func (e legacyEntry) migrate() models.WatchlistItem {
	item := models.NewWatchlistItem(e.ticker)
	if e.fields == nil {
		return item
	}

	decodeField(e.fields, "custom_name", &item.CustomName)
	decodeField(e.fields, "note", &item.Note)
	decodeField(e.fields, "yahoo_url", &item.YahooURL)
	decodeField(e.fields, "tradingview_url", &item.TradingViewURL)
	decodeField(e.fields, "avg_cost", &item.AvgCost)
	decodeField(e.fields, "shares", &item.Shares)

	var rating float64
	if decodeField(e.fields, "rating", &rating) {
		item.Rating = int(math.Round(rating))
	}

	var tags []string
	if decodeField(e.fields, "tags", &tags) {
		item.Tags = models.NormalizeTags(tags)
	} else {
		var single string
		if decodeField(e.fields, "tags", &single) {
			item.Tags = models.NormalizeTags(strings.Split(single, ","))
		}
	}

	item.Rating = min(max(item.Rating, 0), models.MaxRating)
	item.AvgCost = max(item.AvgCost, 0)
	item.Shares = max(item.Shares, 0)
	return item
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// loadDocument decodes raw file content and runs it through the upgrade chain.
// The returned version is the one found on disk; the items are always in the
// current shape.
func loadDocument(raw []byte) ([]models.WatchlistItem, schemaVersion, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, 0, err
	}
	found := doc.version()
	for doc.version() != schemaCurrent {
		doc = doc.upgrade()
	}
	items := []models.WatchlistItem(doc.(currentDoc))
	renumber(items)
	return items, found, nil
}
