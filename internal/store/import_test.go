package store

import (
	"context"
	"path/filepath"
	"testing"

	"watchboard/internal/testutil"
)

func TestImportFile(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt_file_leaves_table_untouched", func(t *testing.T) {
		dst := newTestSQLStore(t)
		seed(t, dst, "AAPL", "MSFT")
		path := testutil.WriteFile(t, "watchlist.json", `[{"ticker": "2330.TW",`)

		n, err := ImportFile(ctx, path, dst)
		if err == nil {
			t.Fatal("expected parse error for truncated file")
		}
		if n != 0 {
			t.Errorf("expected 0 imported, got %d", n)
		}

		items, err := dst.List(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertTickers(t, items, "AAPL", "MSFT")
	})

	t.Run("missing_file_is_an_error", func(t *testing.T) {
		dst := newTestSQLStore(t)
		seed(t, dst, "AAPL")

		if _, err := ImportFile(ctx, filepath.Join(t.TempDir(), "nope.json"), dst); err == nil {
			t.Fatal("expected error for missing file")
		}
		items, err := dst.List(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertTickers(t, items, "AAPL")
	})

	t.Run("replaces_rows_without_rewriting_source", func(t *testing.T) {
		dst := newTestSQLStore(t)
		seed(t, dst, "OLD")
		content := `{"Tech": ["AAPL", {"ticker": "2330.TW", "note": "fab"}]}`
		path := testutil.WriteFile(t, "watchlist.json", content)

		n, err := ImportFile(ctx, path, dst)
		testutil.AssertNoError(t, err)
		if n != 2 {
			t.Errorf("expected 2 imported, got %d", n)
		}

		items, err := dst.List(ctx)
		testutil.AssertNoError(t, err)
		testutil.AssertTickers(t, items, "AAPL", "2330.TW")
		if items[1].Note != "fab" {
			t.Errorf("expected note to survive import, got %q", items[1].Note)
		}

		if got := testutil.ReadFile(t, path); got != content {
			t.Errorf("source file was rewritten: %s", got)
		}
	})
}

func TestReadWatchlistFile_Empty(t *testing.T) {
	path := testutil.WriteFile(t, "watchlist.json", `[]`)
	items, err := ReadWatchlistFile(path)
	testutil.AssertNoError(t, err)
	if len(items) != 0 {
		t.Errorf("expected no items, got %v", testutil.Tickers(items))
	}
}
