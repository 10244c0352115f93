package collector

import (
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/require"
)

func TestAlpacaTimeFrame(t *testing.T) {
	tf, err := alpacaTimeFrame("1d")
	require.NoError(t, err)
	require.Equal(t, marketdata.OneDay, tf)

	tf, err = alpacaTimeFrame("15m")
	require.NoError(t, err)
	require.Equal(t, marketdata.NewTimeFrame(15, marketdata.Min), tf)

	_, err = alpacaTimeFrame("3wk")
	require.Error(t, err)
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2024, 6, 30, 16, 0, 0, 0, time.UTC)
	tests := []struct {
		period string
		want   time.Time
	}{
		{"7d", time.Date(2024, 6, 23, 16, 0, 0, 0, time.UTC)},
		{"3mo", time.Date(2024, 3, 30, 16, 0, 0, 0, time.UTC)},
		{"1y", time.Date(2023, 6, 30, 16, 0, 0, 0, time.UTC)},
		{"2wk", time.Date(2024, 6, 16, 16, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := periodStart(end, tt.period)
		require.NoError(t, err, tt.period)
		require.Equal(t, tt.want, got, tt.period)
	}

	_, err := periodStart(end, "max")
	require.Error(t, err)
	_, err = periodStart(end, "0d")
	require.Error(t, err)
}
