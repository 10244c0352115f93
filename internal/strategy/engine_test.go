package strategy

import (
	"math/rand"
	"testing"

	"StockScreener/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestScore_OversoldUptrendDaily(t *testing.T) {
	ind := &model.IndicatorSet{Price: 110, RSI: 25, SMA20: 100}
	res := Score(ind, model.IntervalDaily)
	if res.Score != 90 {
		t.Fatalf("expected score 90, got %d", res.Score)
	}
	if res.Signal != model.SignalStrongBuy {
		t.Errorf("expected STRONG_BUY, got %s", res.Signal)
	}
	if res.Outlook != model.OutlookStrongUp {
		t.Errorf("expected STRONG_UP, got %s", res.Outlook)
	}
	if res.RSIState != model.RSIOversold {
		t.Errorf("expected OVERSOLD, got %s", res.RSIState)
	}
	if res.EntryType != model.EntryPullback {
		t.Errorf("expected PULLBACK, got %s", res.EntryType)
	}
}

func TestScore_OverboughtDowntrendIntraday(t *testing.T) {
	ind := &model.IndicatorSet{Price: 95, RSI: 75, SMA20: 100}
	res := Score(ind, model.Interval5m)
	// (50-15-10)*0.9 = 22.5, truncated
	if res.Score != 22 {
		t.Fatalf("expected score 22, got %d", res.Score)
	}
	if res.Signal != model.SignalSell {
		t.Errorf("expected SELL, got %s", res.Signal)
	}
	if res.Outlook != model.OutlookDown {
		t.Errorf("expected DOWN, got %s", res.Outlook)
	}
	if res.RSIState != model.RSIOverbought {
		t.Errorf("expected OVERBOUGHT, got %s", res.RSIState)
	}
}

func TestScore_IntradayDiscountBeforeTruncation(t *testing.T) {
	tests := []struct {
		name     string
		ind      model.IndicatorSet
		interval model.IntervalClass
		score    int
	}{
		{"daily neutral uptrend", model.IndicatorSet{Price: 101, RSI: 50, SMA20: 100}, model.IntervalDaily, 65},
		{"15m neutral uptrend", model.IndicatorSet{Price: 101, RSI: 50, SMA20: 100}, model.Interval15m, 58},
		{"daily neutral downtrend", model.IndicatorSet{Price: 99, RSI: 50, SMA20: 100}, model.IntervalDaily, 40},
		{"5m neutral downtrend", model.IndicatorSet{Price: 99, RSI: 50, SMA20: 100}, model.Interval5m, 36},
		{"15m oversold uptrend", model.IndicatorSet{Price: 101, RSI: 20, SMA20: 100}, model.Interval15m, 81},
		{"price equal to sma is not uptrend", model.IndicatorSet{Price: 100, RSI: 50, SMA20: 100}, model.IntervalDaily, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(&tt.ind, tt.interval)
			if res.Score != tt.score {
				t.Errorf("expected %d, got %d", tt.score, res.Score)
			}
		})
	}
}

func TestMapSignal_AllBoundaries(t *testing.T) {
	tests := []struct {
		score   int
		signal  model.Signal
		outlook model.Outlook
	}{
		{100, model.SignalStrongBuy, model.OutlookStrongUp},
		{75, model.SignalStrongBuy, model.OutlookStrongUp},
		{74, model.SignalBuy, model.OutlookUp},
		{60, model.SignalBuy, model.OutlookUp},
		{59, model.SignalHold, model.OutlookSideways},
		{45, model.SignalHold, model.OutlookSideways},
		{44, model.SignalSell, model.OutlookDown},
		{0, model.SignalSell, model.OutlookDown},
	}
	for _, tt := range tests {
		if got := mapSignal(tt.score); got != tt.signal {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.signal, got)
		}
		if got := mapOutlook(tt.score); got != tt.outlook {
			t.Errorf("score %d: expected %s, got %s", tt.score, tt.outlook, got)
		}
	}
}

func TestRSIState_Boundaries(t *testing.T) {
	tests := []struct {
		rsi   float64
		state model.RSIState
	}{
		{29.99, model.RSIOversold},
		{30, model.RSINormal},
		{70, model.RSINormal},
		{70.01, model.RSIOverbought},
	}
	for _, tt := range tests {
		if got := mapRSIState(tt.rsi); got != tt.state {
			t.Errorf("rsi %.2f: expected %s, got %s", tt.rsi, tt.state, got)
		}
	}
}

func TestEntryType(t *testing.T) {
	breakout := &model.IndicatorSet{Price: 121, RSI: 60, SMA20: 110, High20: ptr(120)}
	if got := Score(breakout, model.IntervalDaily).EntryType; got != model.EntryBreakout {
		t.Errorf("expected BREAKOUT, got %s", got)
	}

	weakMomentum := &model.IndicatorSet{Price: 121, RSI: 55, SMA20: 110, High20: ptr(120)}
	if got := Score(weakMomentum, model.IntervalDaily).EntryType; got != model.EntryNone {
		t.Errorf("expected NONE at rsi 55, got %s", got)
	}

	noHigh := &model.IndicatorSet{Price: 121, RSI: 60, SMA20: 110}
	if got := Score(noHigh, model.IntervalDaily).EntryType; got != model.EntryNone {
		t.Errorf("expected NONE without high20, got %s", got)
	}

	pullback := &model.IndicatorSet{Price: 90, RSI: 25, SMA20: 100, High20: ptr(120)}
	if got := Score(pullback, model.IntervalDaily).EntryType; got != model.EntryPullback {
		t.Errorf("expected PULLBACK, got %s", got)
	}
}

func TestScore_AlwaysBounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	intervals := []model.IntervalClass{model.IntervalDaily, model.Interval15m, model.Interval5m}
	for i := 0; i < 1000; i++ {
		ind := &model.IndicatorSet{
			Price: r.Float64() * 500,
			RSI:   r.Float64() * 100,
			SMA20: r.Float64() * 500,
		}
		res := Score(ind, intervals[i%len(intervals)])
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("score out of range: %d for %+v", res.Score, ind)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	ind := &model.IndicatorSet{Price: 101, RSI: 42, SMA20: 100, High20: ptr(105)}
	first := Score(ind, model.Interval15m)
	for i := 0; i < 10; i++ {
		if got := Score(ind, model.Interval15m); got != first {
			t.Fatalf("expected identical results, got %+v vs %+v", got, first)
		}
	}
}
