package screener

import "StockScreener/internal/model"

// Filter keeps rows whose signal matches f, preserving order. FilterAll
// keeps every row, including failed ones.
func Filter(results []model.ScreeningResult, f model.SignalFilter) []model.ScreeningResult {
	out := make([]model.ScreeningResult, 0, len(results))
	for _, r := range results {
		if f == model.FilterAll || (r.Status == model.StatusOK && r.Score != nil && r.Score.Signal == model.Signal(f)) {
			out = append(out, r)
		}
	}
	return out
}

// Summary counts rows per status and per signal.
type Summary struct {
	Total    int                  `json:"total"`
	ByStatus map[model.Status]int `json:"by_status"`
	BySignal map[model.Signal]int `json:"by_signal"`
}

// Summarize builds a Summary for results.
func Summarize(results []model.ScreeningResult) Summary {
	s := Summary{
		Total:    len(results),
		ByStatus: make(map[model.Status]int),
		BySignal: make(map[model.Signal]int),
	}
	for _, r := range results {
		s.ByStatus[r.Status]++
		if r.Score != nil {
			s.BySignal[r.Score.Signal]++
		}
	}
	return s
}

// Actionable returns the OK rows signalling BUY or STRONG_BUY, in order.
func Actionable(results []model.ScreeningResult) []model.ScreeningResult {
	var out []model.ScreeningResult
	for _, r := range results {
		if r.Status != model.StatusOK || r.Score == nil {
			continue
		}
		if r.Score.Signal == model.SignalStrongBuy || r.Score.Signal == model.SignalBuy {
			out = append(out, r)
		}
	}
	return out
}
