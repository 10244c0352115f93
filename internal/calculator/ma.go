package calculator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"StockScreener/internal/model"
)

// DefaultSMAWindow is the moving-average window used by the screener.
const DefaultSMAWindow = 20

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(prices) < period {
		return 0, fmt.Errorf("sma(%d) over %d values: %w", period, len(prices), ErrInsufficientData)
	}
	return stats.Mean(prices[len(prices)-period:])
}

// SMA returns the trailing `window` mean of closes at the final bar.
func SMA(bars []model.OHLCV, window int) (float64, error) {
	return CalculateSMA(extractCloses(bars), window)
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
