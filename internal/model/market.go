package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the bars fetched for one symbol at one (period, interval).
// Bars are strictly ascending in time.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Period    string    `json:"period"`
	Interval  string    `json:"interval"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Last returns the most recent bar. The series must not be empty.
func (s *PriceSeries) Last() OHLCV {
	return s.Bars[len(s.Bars)-1]
}

// IndicatorSet is the scalar snapshot for the latest bar of a PriceSeries.
// ATR and High20 are nil when the series is too short to compute them.
type IndicatorSet struct {
	Price  float64  `json:"price"`
	RSI    float64  `json:"rsi"`
	SMA20  float64  `json:"sma20"`
	ATR    *float64 `json:"atr,omitempty"`
	// High20 is the highest high of the 20 bars before the latest one; the
	// latest bar is excluded so a breakout above it is possible.
	High20 *float64 `json:"high20,omitempty"`
}
