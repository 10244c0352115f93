package strategy

import "StockScreener/internal/model"

// Score maps an IndicatorSet to a bounded score and its labels.
// The intraday discount is applied before clamping, and the clamped value
// is truncated toward zero.
func Score(ind *model.IndicatorSet, interval model.IntervalClass) model.ScoreResult {
	raw := baseScore
	raw += rsiAdjustment(ind.RSI)
	raw += trendAdjustment(ind.Price, ind.SMA20)

	if interval.Intraday() {
		raw *= intradayDiscount
	}

	score := int(clamp(raw, 0, 100))

	return model.ScoreResult{
		Score:     score,
		Signal:    mapSignal(score),
		Outlook:   mapOutlook(score),
		RSIState:  mapRSIState(ind.RSI),
		EntryType: mapEntryType(ind),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
