package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"StockScreener/internal/model"
)

// ErrInvalidTrade is returned for entries that cannot be logged.
var ErrInvalidTrade = errors.New("invalid trade")

// Recorder is an append-only store of user-confirmed trades.
// The screening engine never reads it.
type Recorder interface {
	Append(ctx context.Context, entry *model.TradeLogEntry) error
	List(ctx context.Context) ([]model.TradeLogEntry, error)
	Close() error
}

// prepare validates entry and fills in the ID and timestamp when missing.
func prepare(entry *model.TradeLogEntry) error {
	entry.Symbol = strings.ToUpper(strings.TrimSpace(entry.Symbol))
	switch {
	case entry.Symbol == "":
		return fmt.Errorf("symbol is required: %w", ErrInvalidTrade)
	case entry.EntryPrice <= 0:
		return fmt.Errorf("entry price must be positive: %w", ErrInvalidTrade)
	case entry.Quantity <= 0:
		return fmt.Errorf("quantity must be positive: %w", ErrInvalidTrade)
	case entry.Score < 0 || entry.Score > 100:
		return fmt.Errorf("score must be within [0, 100]: %w", ErrInvalidTrade)
	case entry.StopLoss < 0 || entry.Target < 0:
		return fmt.Errorf("target and stop must not be negative: %w", ErrInvalidTrade)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return nil
}
