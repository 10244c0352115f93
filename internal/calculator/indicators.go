package calculator

import (
	"errors"
	"fmt"
	"math"

	"StockScreener/internal/model"
)

// MinBars is the shortest series that yields an IndicatorSet (SMA20).
const MinBars = DefaultSMAWindow

// ComputeIndicators builds the IndicatorSet for the final bar.
// SMA20 and RSI are mandatory; ATR and High20 are left nil when the series
// is too short for them.
func ComputeIndicators(bars []model.OHLCV) (*model.IndicatorSet, error) {
	if len(bars) < MinBars {
		return nil, fmt.Errorf("need %d bars, have %d: %w", MinBars, len(bars), ErrInsufficientData)
	}

	sma, err := SMA(bars, DefaultSMAWindow)
	if err != nil {
		return nil, fmt.Errorf("sma20: %w", err)
	}
	rsi, err := RSI(bars, DefaultRSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}

	ind := &model.IndicatorSet{
		Price: bars[len(bars)-1].Close,
		RSI:   rsi,
		SMA20: sma,
	}

	if atr, err := ATR(bars, DefaultATRPeriod); err == nil {
		ind.ATR = &atr
	} else if !errors.Is(err, ErrInsufficientData) {
		return nil, fmt.Errorf("atr: %w", err)
	}

	// Breakout high is taken over the bars before the final one; a close can
	// never exceed a window that already contains its own bar's high.
	if len(bars) > DefaultHighWindow {
		high, err := RollingMax(bars[:len(bars)-1], FieldHigh, DefaultHighWindow)
		if err != nil {
			return nil, fmt.Errorf("high20: %w", err)
		}
		ind.High20 = &high
	}

	for name, v := range map[string]float64{"price": ind.Price, "rsi": ind.RSI, "sma20": ind.SMA20} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s is not finite", name)
		}
	}
	if ind.ATR != nil && (math.IsNaN(*ind.ATR) || math.IsInf(*ind.ATR, 0)) {
		ind.ATR = nil
	}
	return ind, nil
}
