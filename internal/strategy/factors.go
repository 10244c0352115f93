package strategy

import "StockScreener/internal/model"

const (
	baseScore = 50.0

	oversoldRSI   = 30.0
	overboughtRSI = 70.0
	breakoutRSI   = 55.0

	oversoldBonus     = 25.0
	overboughtPenalty = -15.0
	uptrendBonus      = 15.0
	downtrendPenalty  = -10.0

	// intradayDiscount scales the raw score on sub-daily timeframes.
	intradayDiscount = 0.9
)

// Thresholds shared by the signal and outlook mappings.
const (
	StrongBuyScore = 75
	BuyScore       = 60
	HoldScore      = 45
)

// rsiAdjustment rewards oversold and penalizes overbought readings.
func rsiAdjustment(rsi float64) float64 {
	switch {
	case rsi < oversoldRSI:
		return oversoldBonus
	case rsi > overboughtRSI:
		return overboughtPenalty
	default:
		return 0
	}
}

// trendAdjustment compares the last close with SMA20.
func trendAdjustment(price, sma20 float64) float64 {
	if price > sma20 {
		return uptrendBonus
	}
	return downtrendPenalty
}

func mapSignal(score int) model.Signal {
	switch {
	case score >= StrongBuyScore:
		return model.SignalStrongBuy
	case score >= BuyScore:
		return model.SignalBuy
	case score >= HoldScore:
		return model.SignalHold
	default:
		return model.SignalSell
	}
}

func mapOutlook(score int) model.Outlook {
	switch {
	case score >= StrongBuyScore:
		return model.OutlookStrongUp
	case score >= BuyScore:
		return model.OutlookUp
	case score >= HoldScore:
		return model.OutlookSideways
	default:
		return model.OutlookDown
	}
}

func mapRSIState(rsi float64) model.RSIState {
	switch {
	case rsi < oversoldRSI:
		return model.RSIOversold
	case rsi > overboughtRSI:
		return model.RSIOverbought
	default:
		return model.RSINormal
	}
}

// mapEntryType needs High20 for a breakout; without it only a pullback can be flagged.
func mapEntryType(ind *model.IndicatorSet) model.EntryType {
	if ind.High20 != nil && ind.Price > *ind.High20 && ind.RSI > breakoutRSI {
		return model.EntryBreakout
	}
	if ind.RSI < oversoldRSI {
		return model.EntryPullback
	}
	return model.EntryNone
}
