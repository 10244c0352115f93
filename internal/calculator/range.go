package calculator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"StockScreener/internal/model"
)

// DefaultHighWindow is the lookback of the breakout high.
const DefaultHighWindow = 20

// Field selects one value of a bar.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

func (f Field) value(b model.OHLCV) (float64, error) {
	switch f {
	case FieldOpen:
		return b.Open, nil
	case FieldHigh:
		return b.High, nil
	case FieldLow:
		return b.Low, nil
	case FieldClose:
		return b.Close, nil
	case FieldVolume:
		return b.Volume, nil
	}
	return 0, fmt.Errorf("unknown field %q", string(f))
}

// RollingMax returns the maximum of the trailing `window` values of field,
// ending at the final bar.
func RollingMax(bars []model.OHLCV, field Field, window int) (float64, error) {
	if window <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(bars) < window {
		return 0, fmt.Errorf("rolling max(%d) over %d bars: %w", window, len(bars), ErrInsufficientData)
	}
	values := make([]float64, 0, window)
	for _, b := range bars[len(bars)-window:] {
		v, err := field.value(b)
		if err != nil {
			return 0, err
		}
		values = append(values, v)
	}
	return stats.Max(values)
}
