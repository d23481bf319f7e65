// Command checkdata fetches a fixed set of symbols through the market data
// layer and prints what came back. It is a quick connectivity check against
// the quote provider.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"watchboard/internal/config"
	"watchboard/internal/logger"
	"watchboard/internal/marketdata"
	"watchboard/internal/models"
)

var sampleTickers = []string{"2330.TW", "AAPL", "BTC-USD"}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("checkdata: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := marketdata.NewYahooClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.QuoteBaseURL, cfg.QuoteRateLimit)
	market := marketdata.NewAccessor(client, marketdata.Options{Workers: cfg.PrefetchWorkers})

	ctx := context.Background()
	reqs := make([]marketdata.PrefetchRequest, len(sampleTickers))
	for i, tk := range sampleTickers {
		reqs[i] = marketdata.PrefetchRequest{Ticker: tk, Periods: []models.Period{models.Period1D}}
	}
	market.Prefetch(ctx, reqs, cfg.FXPair)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSYMBOL\tPRICE\tCURRENCY\tNAME\t1D BARS")
	missing := 0
	for _, tk := range sampleTickers {
		q, ok := market.Quote(ctx, tk)
		bars := market.History(ctx, tk, models.Period1D)
		if !ok {
			missing++
			fmt.Fprintf(w, "%s\t-\tNo Data\t-\t-\t%d\n", tk, len(bars))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%d\n", tk, q.Symbol, q.Price, q.Currency, q.ShortName, len(bars))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if rate, ok := market.FXRate(ctx, cfg.FXPair); ok {
		fmt.Printf("\n%s: %.4f\n", cfg.FXPair, rate)
	} else {
		missing++
		fmt.Printf("\n%s: No Data\n", cfg.FXPair)
	}

	if missing > 0 {
		return fmt.Errorf("%d lookups returned no data", missing)
	}
	return nil
}
