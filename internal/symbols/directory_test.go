package symbols

import (
	"path/filepath"
	"testing"

	"watchboard/internal/models"
	"watchboard/internal/testutil"
)

func testDirectory() *Directory {
	return New(
		map[string]string{"2330.TW": "台積電", "2317": "鴻海", "6488.TWO": "環球晶"},
		map[string]string{"aapl": "Apple Inc.", "AMZN": "Amazon.com Inc.", "MSFT": "Microsoft Corp."},
	)
}

func TestDirectory_Lookup(t *testing.T) {
	d := testDirectory()
	tests := []struct {
		ticker string
		want   string
		found  bool
	}{
		{"2330.TW", "台積電", true},
		{"2317.TW", "鴻海", true},
		{"2317.TWO", "鴻海", true},
		{"6488.TWO", "環球晶", true},
		{"aapl", "Apple Inc.", true},
		{"2330", "", false},
		{"BTC-USD", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.ticker, func(t *testing.T) {
			got, ok := d.Lookup(tc.ticker)
			if ok != tc.found || got != tc.want {
				t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tc.ticker, got, ok, tc.want, tc.found)
			}
		})
	}
}

func TestDirectory_DisplayName(t *testing.T) {
	d := testDirectory()
	custom := models.NewWatchlistItem("2330.TW")
	custom.CustomName = "TSMC"

	tests := []struct {
		name  string
		item  models.WatchlistItem
		short string
		long  string
		want  string
	}{
		{"custom_name_wins", custom, "Taiwan Semi", "", "TSMC"},
		{"tw_map", models.NewWatchlistItem("2330.TW"), "Taiwan Semi", "", "台積電"},
		{"us_ignores_map", models.NewWatchlistItem("AAPL"), "Apple", "Apple Inc.", "Apple"},
		{"long_name", models.NewWatchlistItem("AAPL"), "", "Apple Inc.", "Apple Inc."},
		{"ticker_fallback", models.NewWatchlistItem("BTC-USD"), "", "", "BTC-USD"},
		{"unmapped_tw", models.NewWatchlistItem("1101.TW"), "TCC", "", "TCC"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := d.DisplayName(tc.item, tc.short, tc.long); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDirectory_Search(t *testing.T) {
	d := testDirectory()

	t.Run("ticker_prefix", func(t *testing.T) {
		got := d.Search("am", 0)
		if len(got) != 1 || got[0].Ticker != "AMZN" {
			t.Errorf("expected [AMZN], got %v", got)
		}
	})

	t.Run("name_substring_case_insensitive", func(t *testing.T) {
		got := d.Search("CORP", 0)
		if len(got) != 1 || got[0].Ticker != "MSFT" || got[0].Market != models.MarketUS {
			t.Errorf("expected [MSFT], got %v", got)
		}
	})

	t.Run("chinese_name", func(t *testing.T) {
		got := d.Search("積", 0)
		if len(got) != 1 || got[0].Ticker != "2330.TW" || got[0].Market != models.MarketTW {
			t.Errorf("expected [2330.TW], got %v", got)
		}
	})

	t.Run("sorted_and_limited", func(t *testing.T) {
		got := d.Search("", 3)
		if len(got) != 3 {
			t.Fatalf("expected 3 results, got %d", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].Ticker > got[i].Ticker {
				t.Errorf("results not sorted: %v", got)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tw := testutil.WriteFile(t, "tw_stock_map.json", `{"2330.TW": "台積電"}`)

	t.Run("missing_us_map", func(t *testing.T) {
		d, err := Load(tw, filepath.Join(t.TempDir(), "missing.json"))
		testutil.AssertNoError(t, err)
		if d.Len() != 1 {
			t.Errorf("expected 1 symbol, got %d", d.Len())
		}
	})

	t.Run("malformed", func(t *testing.T) {
		bad := testutil.WriteFile(t, "us_stock_map.json", `["AAPL"]`)
		if _, err := Load(tw, bad); err == nil {
			t.Error("expected error for malformed map")
		}
	})

	t.Run("empty_paths", func(t *testing.T) {
		d, err := Load("", "")
		testutil.AssertNoError(t, err)
		if d.Len() != 0 {
			t.Errorf("expected empty directory, got %d", d.Len())
		}
	})
}
