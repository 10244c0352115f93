package fund

import (
	"errors"
	"fmt"
	"math"

	"StockScreener/internal/model"
)

// ErrDivisionUndefined is returned when the price is not positive.
var ErrDivisionUndefined = errors.New("price must be positive")

// FallbackATRPercent is the volatility proxy, as a fraction of price, used
// when ATR cannot be computed.
const FallbackATRPercent = 0.02

// MinQuantityScore is the lowest score for which a quantity is recommended.
const MinQuantityScore = 60

const stopLossATRs = 1.5

// Size converts a scored price into targets, a stop-loss and a position size.
// atr may be nil; the FallbackATRPercent proxy is used in that case.
func Size(price float64, atr *float64, score int, capital, riskFactor float64) (model.SizingResult, error) {
	if price <= 0 {
		return model.SizingResult{}, fmt.Errorf("size at price %v: %w", price, ErrDivisionUndefined)
	}

	vol, fallback := volatility(price, atr)

	res := model.SizingResult{
		Target1:     price + vol,
		Target2:     price + 2*vol,
		Target3:     price + 3*vol,
		StopLoss:    price - stopLossATRs*vol,
		Allocation:  capital * riskFactor * float64(score) / 100,
		ATRFallback: fallback,
	}
	if score >= MinQuantityScore {
		res.Quantity = int(math.Floor(res.Allocation / price))
	}
	if res.Quantity < 0 {
		res.Quantity = 0
	}
	return res, nil
}

// SizeForTier resolves the tier's factor before sizing.
func SizeForTier(price float64, atr *float64, score int, capital float64, tier model.RiskTier) (model.SizingResult, error) {
	factor, ok := tier.Factor()
	if !ok {
		return model.SizingResult{}, fmt.Errorf("unknown risk tier %q", string(tier))
	}
	return Size(price, atr, score, capital, factor)
}

func volatility(price float64, atr *float64) (float64, bool) {
	if atr == nil || math.IsNaN(*atr) || math.IsInf(*atr, 0) || *atr < 0 {
		return price * FallbackATRPercent, true
	}
	return *atr, false
}
