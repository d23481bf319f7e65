package models

import "strings"

// MarketType classifies a ticker by the market it trades on.
type MarketType string

const (
	MarketTW     MarketType = "tw"
	MarketUS     MarketType = "us"
	MarketCrypto MarketType = "crypto"
)

const (
	suffixTWSE = ".TW"
	suffixTPEx = ".TWO"
)

// NormalizeTicker trims and upper-cases a user supplied symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// MarketTypeOf classifies ticker: a .TW or .TWO suffix is Taiwan, a dash marks
// a crypto pair, anything else is US.
func MarketTypeOf(ticker string) MarketType {
	switch {
	case IsTaiwanTicker(ticker):
		return MarketTW
	case strings.Contains(ticker, "-"):
		return MarketCrypto
	default:
		return MarketUS
	}
}

// IsTaiwanTicker reports whether ticker is listed on TWSE or TPEx.
func IsTaiwanTicker(ticker string) bool {
	return strings.HasSuffix(ticker, suffixTWSE) || strings.HasSuffix(ticker, suffixTPEx)
}

// TPExFallback returns the .TWO form of a .TW ticker. The second result is
// false for any ticker that is not TWSE-suffixed.
func TPExFallback(ticker string) (string, bool) {
	if !strings.HasSuffix(ticker, suffixTWSE) {
		return "", false
	}
	return strings.TrimSuffix(ticker, suffixTWSE) + suffixTPEx, true
}

// TaiwanCode strips the exchange suffix from a Taiwan ticker.
func TaiwanCode(ticker string) string {
	if strings.HasSuffix(ticker, suffixTPEx) {
		return strings.TrimSuffix(ticker, suffixTPEx)
	}
	return strings.TrimSuffix(ticker, suffixTWSE)
}

// MarketRank orders market types for the "type" sort: TW, then US, then crypto.
func MarketRank(t MarketType) int {
	switch t {
	case MarketTW:
		return 0
	case MarketUS:
		return 1
	case MarketCrypto:
		return 2
	default:
		return 99
	}
}
