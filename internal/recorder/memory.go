package recorder

import (
	"context"
	"fmt"
	"sync"

	"StockScreener/internal/model"
)

// MemoryRecorder keeps the trade log in process memory.
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries []model.TradeLogEntry
	ids     map[string]bool
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{ids: make(map[string]bool)}
}

func (m *MemoryRecorder) Append(_ context.Context, entry *model.TradeLogEntry) error {
	if err := prepare(entry); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ids[entry.ID] {
		return fmt.Errorf("entry %s already exists: %w", entry.ID, ErrInvalidTrade)
	}
	m.ids[entry.ID] = true
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *MemoryRecorder) List(_ context.Context) ([]model.TradeLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.TradeLogEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryRecorder) Close() error { return nil }
