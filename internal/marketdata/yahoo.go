// Package marketdata fetches quotes, price history and FX rates from Yahoo
// Finance and caches them for a short time.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"watchboard/internal/models"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// Quote is the latest market snapshot for a symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency,omitempty"`
	ShortName string  `json:"short_name,omitempty"`
	LongName  string  `json:"long_name,omitempty"`
}

// Bar is one OHLCV candle.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// yahooChartResponse is the v8 chart API response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		Currency           string  `json:"currency"`
		ShortName          string  `json:"shortName"`
		LongName           string  `json:"longName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooClient talks to the Yahoo Finance v8 chart endpoint.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	limiter    *rate.Limiter
}

// NewYahooClient creates a client. A requestsPerSecond of zero or less
// disables client-side throttling.
func NewYahooClient(httpClient *http.Client, baseURL string, requestsPerSecond float64) *YahooClient {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	c := &YahooClient{httpClient: httpClient, baseURL: baseURL}
	if requestsPerSecond > 0 {
		burst := max(int(requestsPerSecond), 1)
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return c
}

// FetchQuote returns the latest quote for symbol.
func (c *YahooClient) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	result, err := c.chart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}
	if result.Meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("no price for %s", symbol)
	}
	return &Quote{
		Symbol:    symbol,
		Price:     result.Meta.RegularMarketPrice,
		Currency:  result.Meta.Currency,
		ShortName: result.Meta.ShortName,
		LongName:  result.Meta.LongName,
	}, nil
}

// FetchHistory returns the bars for symbol over period. Bars without a close
// are skipped.
func (c *YahooClient) FetchHistory(ctx context.Context, symbol string, period models.Period) ([]Bar, error) {
	rng, interval := period.RangeInterval()
	result, err := c.chart(ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	q := result.Indicators.Quote[0]
	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closePrice := valueAt(q.Close, i)
		if closePrice == nil {
			continue
		}
		bar := Bar{Time: time.Unix(ts, 0).UTC(), Close: *closePrice}
		if v := valueAt(q.Open, i); v != nil {
			bar.Open = *v
		}
		if v := valueAt(q.High, i); v != nil {
			bar.High = *v
		}
		if v := valueAt(q.Low, i); v != nil {
			bar.Low = *v
		}
		if v := valueAt(q.Volume, i); v != nil {
			bar.Volume = *v
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (c *YahooClient) chart(ctx context.Context, symbol, rng, interval string) (*yahooChartResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	endpoint := c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request for %s: %w", symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("request for %s: unexpected status %d", symbol, resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding chart response for %s: %w", symbol, err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s: %s", symbol, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s: unexpected status %d", symbol, resp.StatusCode)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart results for %s", symbol)
	}
	return &chartResp.Chart.Result[0], nil
}

func valueAt[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
