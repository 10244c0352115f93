package model

// Signal is the categorical trade signal derived from a score.
type Signal string

const (
	SignalStrongBuy Signal = "STRONG_BUY"
	SignalBuy       Signal = "BUY"
	SignalHold      Signal = "HOLD"
	SignalSell      Signal = "SELL"
)

// Outlook mirrors Signal with directional wording.
type Outlook string

const (
	OutlookStrongUp Outlook = "STRONG_UP"
	OutlookUp       Outlook = "UP"
	OutlookSideways Outlook = "SIDEWAYS"
	OutlookDown     Outlook = "DOWN"
)

// RSIState labels the RSI band.
type RSIState string

const (
	RSIOversold   RSIState = "OVERSOLD"
	RSIOverbought RSIState = "OVERBOUGHT"
	RSINormal     RSIState = "NORMAL"
)

// EntryType suggests how a position would be entered.
type EntryType string

const (
	EntryBreakout EntryType = "BREAKOUT"
	EntryPullback EntryType = "PULLBACK"
	EntryNone     EntryType = "NONE"
)

// ScoreResult is the output of the scoring engine.
type ScoreResult struct {
	Score     int       `json:"score"`
	Signal    Signal    `json:"signal"`
	Outlook   Outlook   `json:"outlook"`
	RSIState  RSIState  `json:"rsi_state"`
	EntryType EntryType `json:"entry_type"`
}

// SizingResult holds price targets and the suggested position size.
type SizingResult struct {
	Target1    float64 `json:"target1"`
	Target2    float64 `json:"target2"`
	Target3    float64 `json:"target3"`
	StopLoss   float64 `json:"stop_loss"`
	Allocation float64 `json:"allocation"`
	Quantity   int     `json:"quantity"`
	// ATRFallback is set when targets were derived from the fixed percentage
	// proxy instead of a computed ATR.
	ATRFallback bool `json:"atr_fallback"`
}

// Status is the per-symbol outcome of a screening run.
type Status string

const (
	StatusOK     Status = "OK"
	StatusNoData Status = "NO_DATA"
	StatusError  Status = "ERROR"
)

// ScreeningResult is one row of a screening run.
type ScreeningResult struct {
	Symbol     string        `json:"symbol"`
	Indicators *IndicatorSet `json:"indicators"`
	Score      *ScoreResult  `json:"score"`
	Sizing     *SizingResult `json:"sizing"`
	Status     Status        `json:"status"`
	Error      string        `json:"error,omitempty"`
}
