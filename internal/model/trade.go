package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeLogEntry is a user-confirmed trade. Entries are append-only.
type TradeLogEntry struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	Quantity   int       `json:"quantity"`
	Target     float64   `json:"target"`
	StopLoss   float64   `json:"stop_loss"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notional returns entry price times quantity, rounded to cents.
func (e TradeLogEntry) Notional() decimal.Decimal {
	return decimal.NewFromFloat(e.EntryPrice).Mul(decimal.NewFromInt(int64(e.Quantity))).Round(2)
}

// RiskAmount returns the loss taken if the stop is hit, rounded to cents.
func (e TradeLogEntry) RiskAmount() decimal.Decimal {
	perShare := decimal.NewFromFloat(e.EntryPrice).Sub(decimal.NewFromFloat(e.StopLoss))
	return perShare.Mul(decimal.NewFromInt(int64(e.Quantity))).Round(2)
}
