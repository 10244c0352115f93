package model

// IntervalClass selects the sampling timeframe of a screening run.
type IntervalClass string

const (
	IntervalDaily IntervalClass = "1d"
	Interval15m   IntervalClass = "15m"
	Interval5m    IntervalClass = "5m"
)

// IntervalClasses lists every supported interval class.
var IntervalClasses = []IntervalClass{IntervalDaily, Interval15m, Interval5m}

// Intraday reports whether the class samples below one day.
func (c IntervalClass) Intraday() bool {
	return c == Interval15m || c == Interval5m
}

// Window returns the fixed (period, interval) pair fetched for the class.
func (c IntervalClass) Window() (period, interval string) {
	switch c {
	case Interval15m:
		return "7d", "15m"
	case Interval5m:
		return "7d", "5m"
	default:
		return "3mo", "1d"
	}
}

// Valid reports whether c is a known interval class.
func (c IntervalClass) Valid() bool {
	for _, k := range IntervalClasses {
		if c == k {
			return true
		}
	}
	return false
}

// RiskTier is a named fraction of capital allocated per signal.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

var riskFactors = map[RiskTier]float64{
	RiskLow:    0.05,
	RiskMedium: 0.10,
	RiskHigh:   0.20,
}

// Factor returns the tier's capital multiplier and whether the tier is known.
func (t RiskTier) Factor() (float64, bool) {
	f, ok := riskFactors[t]
	return f, ok
}

// SignalFilter keeps rows whose signal matches, or every row for FilterAll.
type SignalFilter string

const FilterAll SignalFilter = "ALL"

// Valid reports whether f is ALL or one of the signal categories.
func (f SignalFilter) Valid() bool {
	switch Signal(f) {
	case SignalStrongBuy, SignalBuy, SignalHold, SignalSell:
		return true
	}
	return f == FilterAll
}

// ScreenConfig is the validated per-run configuration.
type ScreenConfig struct {
	Interval IntervalClass `json:"interval"`
	Capital  float64       `json:"capital"`
	Risk     RiskTier      `json:"risk"`
	Filter   SignalFilter  `json:"filter"`
}
