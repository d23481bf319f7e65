package models

// Period is a chart window selectable by the user.
type Period string

const (
	Period1D  Period = "1D"
	Period7D  Period = "7D"
	Period1M  Period = "1M"
	Period1Y  Period = "1Y"
	PeriodAll Period = "ALL"
)

// DefaultPeriod is the window used when none is chosen.
const DefaultPeriod = Period1M

// Periods lists every valid period in display order.
var Periods = []Period{Period1D, Period7D, Period1M, Period1Y, PeriodAll}

var periodRanges = map[Period][2]string{
	Period1D:  {"1d", "5m"},
	Period7D:  {"5d", "1h"},
	Period1M:  {"1mo", "1d"},
	Period1Y:  {"1y", "1wk"},
	PeriodAll: {"max", "1mo"},
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	_, ok := periodRanges[p]
	return ok
}

// RangeInterval returns the Yahoo chart range and bar interval for p.
func (p Period) RangeInterval() (rng, interval string) {
	ri, ok := periodRanges[p]
	if !ok {
		ri = periodRanges[DefaultPeriod]
	}
	return ri[0], ri[1]
}
