// Package screener runs the indicator, scoring and sizing pipeline across a
// watchlist.
package screener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"StockScreener/internal/calculator"
	"StockScreener/internal/collector"
	"StockScreener/internal/fund"
	"StockScreener/internal/model"
	"StockScreener/internal/strategy"
)

// DefaultConcurrency bounds simultaneous fetches.
const DefaultConcurrency = 4

// Screener evaluates symbols independently and returns one row per symbol.
type Screener struct {
	Fetcher     collector.Fetcher
	Logger      *zap.SugaredLogger
	Concurrency int
}

// New creates a Screener.
func New(fetcher collector.Fetcher, logger *zap.SugaredLogger) *Screener {
	return &Screener{Fetcher: fetcher, Logger: logger, Concurrency: DefaultConcurrency}
}

// Screen is a convenience wrapper running a silent Screener over fetcher.
func Screen(ctx context.Context, symbols []string, fetcher collector.Fetcher, cfg model.ScreenConfig) []model.ScreeningResult {
	return New(fetcher, zap.NewNop().Sugar()).Screen(ctx, symbols, cfg)
}

// Screen returns exactly one result per symbol in input order. Per-symbol
// failures become NO_DATA or ERROR rows and never abort the batch.
func (s *Screener) Screen(ctx context.Context, symbols []string, cfg model.ScreenConfig) []model.ScreeningResult {
	results := make([]model.ScreeningResult, len(symbols))

	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			results[i] = s.Analyze(ctx, symbol, cfg)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Analyze runs the full pipeline for one symbol.
func (s *Screener) Analyze(ctx context.Context, symbol string, cfg model.ScreenConfig) (res model.ScreeningResult) {
	res.Symbol = symbol
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Errorw("analysis panicked", "symbol", symbol, "panic", r)
			res = errorRow(symbol, fmt.Errorf("panic: %v", r))
		}
	}()

	period, interval := cfg.Interval.Window()
	series, err := s.Fetcher.FetchSeries(ctx, symbol, period, interval)
	if err != nil {
		s.Logger.Warnw("fetch failed", "symbol", symbol, "period", period, "interval", interval, "error", err)
		return failedRow(symbol, err)
	}

	ind, err := calculator.ComputeIndicators(series.Bars)
	if err != nil {
		s.Logger.Infow("indicators unavailable", "symbol", symbol, "bars", len(series.Bars), "error", err)
		return failedRow(symbol, err)
	}

	score := strategy.Score(ind, cfg.Interval)

	sizing, err := fund.SizeForTier(ind.Price, ind.ATR, score.Score, cfg.Capital, cfg.Risk)
	if err != nil {
		s.Logger.Warnw("sizing failed", "symbol", symbol, "error", err)
		return errorRow(symbol, err)
	}

	return model.ScreeningResult{
		Symbol:     symbol,
		Indicators: ind,
		Score:      &score,
		Sizing:     &sizing,
		Status:     model.StatusOK,
	}
}

// failedRow classifies err: missing or short data is NO_DATA, anything else ERROR.
func failedRow(symbol string, err error) model.ScreeningResult {
	if errors.Is(err, collector.ErrNoData) || errors.Is(err, calculator.ErrInsufficientData) {
		return model.ScreeningResult{Symbol: symbol, Status: model.StatusNoData, Error: err.Error()}
	}
	return errorRow(symbol, err)
}

func errorRow(symbol string, err error) model.ScreeningResult {
	return model.ScreeningResult{Symbol: symbol, Status: model.StatusError, Error: err.Error()}
}
