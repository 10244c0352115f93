package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"StockScreener/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market data API.
type AlpacaFetcher struct {
	Client *marketdata.Client
	Feed   string
	now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher. baseURL may be empty for the default endpoint.
func NewAlpacaFetcher(apiKey, apiSecret, baseURL, feed string) *AlpacaFetcher {
	return &AlpacaFetcher{
		Client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		Feed: feed,
		now:  time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

func (f *AlpacaFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	tf, err := alpacaTimeFrame(interval)
	if err != nil {
		return nil, err
	}
	end := f.now()
	start, err := periodStart(end, period)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     start,
		End:       end,
	}
	if f.Feed != "" {
		req.Feed = marketdata.Feed(f.Feed)
	}
	raw, err := f.Client.GetBars(symbol, req)
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("alpaca %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.OHLCV, len(raw))
	for i, b := range raw {
		bars[i] = model.OHLCV{
			Time:   b.Timestamp.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		}
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: end,
	}, nil
}

func alpacaTimeFrame(interval string) (marketdata.TimeFrame, error) {
	switch interval {
	case "1d":
		return marketdata.OneDay, nil
	case "1h", "60m":
		return marketdata.OneHour, nil
	case "1m":
		return marketdata.OneMin, nil
	}
	if n, ok := strings.CutSuffix(interval, "m"); ok {
		if v, err := strconv.Atoi(n); err == nil && v > 0 {
			return marketdata.NewTimeFrame(v, marketdata.Min), nil
		}
	}
	return marketdata.TimeFrame{}, fmt.Errorf("alpaca: unsupported interval %q", interval)
}

// periodStart parses Yahoo-style ranges ("7d", "3mo", "1y", "2wk").
func periodStart(end time.Time, period string) (time.Time, error) {
	units := []struct {
		suffix string
		apply  func(int) time.Time
	}{
		{"mo", func(n int) time.Time { return end.AddDate(0, -n, 0) }},
		{"wk", func(n int) time.Time { return end.AddDate(0, 0, -7*n) }},
		{"d", func(n int) time.Time { return end.AddDate(0, 0, -n) }},
		{"y", func(n int) time.Time { return end.AddDate(-n, 0, 0) }},
	}
	for _, u := range units {
		if n, ok := strings.CutSuffix(period, u.suffix); ok {
			v, err := strconv.Atoi(n)
			if err != nil || v <= 0 {
				return time.Time{}, fmt.Errorf("invalid period %q", period)
			}
			return u.apply(v), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid period %q", period)
}
