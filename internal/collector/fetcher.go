package collector

import (
	"context"
	"errors"

	"StockScreener/internal/model"
)

// ErrNoData is returned when the source has no bars for a symbol.
var ErrNoData = errors.New("no data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error)
	Name() string
}
