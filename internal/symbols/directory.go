// Package symbols maps tickers to human readable company names.
package symbols

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"watchboard/internal/models"
)

// Entry is a search result.
type Entry struct {
	Ticker string            `json:"ticker"`
	Name   string            `json:"name"`
	Market models.MarketType `json:"market"`
}

// Directory holds the Taiwan and US name maps.
type Directory struct {
	tw map[string]string
	us map[string]string
}

// New builds a Directory from in-memory maps. Nil maps are treated as empty.
func New(tw, us map[string]string) *Directory {
	d := &Directory{tw: make(map[string]string, len(tw)), us: make(map[string]string, len(us))}
	for k, v := range tw {
		d.tw[models.NormalizeTicker(k)] = v
	}
	for k, v := range us {
		d.us[models.NormalizeTicker(k)] = v
	}
	return d
}

// Load reads the {ticker: name} JSON maps at twPath and usPath. A missing file
// yields an empty map; a malformed one is an error.
func Load(twPath, usPath string) (*Directory, error) {
	tw, err := readMap(twPath)
	if err != nil {
		return nil, err
	}
	us, err := readMap(usPath)
	if err != nil {
		return nil, err
	}
	return New(tw, us), nil
}

func readMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Len returns the number of known symbols.
func (d *Directory) Len() int {
	return len(d.tw) + len(d.us)
}

// Lookup returns the mapped name for ticker. The TW map is consulted for
// Taiwan tickers, with and without the exchange suffix.
func (d *Directory) Lookup(ticker string) (string, bool) {
	ticker = models.NormalizeTicker(ticker)
	if models.IsTaiwanTicker(ticker) {
		if name, ok := d.tw[ticker]; ok {
			return name, true
		}
		name, ok := d.tw[models.TaiwanCode(ticker)]
		return name, ok
	}
	name, ok := d.us[ticker]
	return name, ok
}

// DisplayName picks the name shown for an item: the custom name, then the TW
// map, then the quote's short and long names, then the ticker itself.
func (d *Directory) DisplayName(item models.WatchlistItem, shortName, longName string) string {
	if item.CustomName != "" {
		return item.CustomName
	}
	if models.IsTaiwanTicker(item.Ticker) {
		if name, ok := d.Lookup(item.Ticker); ok && name != "" {
			return name
		}
	}
	if shortName != "" {
		return shortName
	}
	if longName != "" {
		return longName
	}
	return item.Ticker
}

// Search matches query against ticker prefixes and name substrings, ignoring
// case. Results are sorted by ticker and capped at limit when limit > 0.
func (d *Directory) Search(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	results := make([]Entry, 0)

	collect := func(m map[string]string) {
		for ticker, name := range m {
			if q == "" || strings.HasPrefix(strings.ToLower(ticker), q) || strings.Contains(strings.ToLower(name), q) {
				results = append(results, Entry{Ticker: ticker, Name: name, Market: models.MarketTypeOf(ticker)})
			}
		}
	}
	collect(d.tw)
	collect(d.us)

	sort.Slice(results, func(i, j int) bool { return results[i].Ticker < results[j].Ticker })
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
