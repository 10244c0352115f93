package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"StockScreener/internal/model"
)

// Language selects the label set used in messages.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

type labels struct {
	alertTitle   string
	resultsTitle string
	tradesTitle  string
	noTrades     string
	score        string
	price        string
	targets      string
	stop         string
	quantity     string
	entry        string
	fallback     string
	help         string
	signals      map[model.Signal]string
	outlooks     map[model.Outlook]string
	statuses     map[model.Status]string
}

var labelSets = map[Language]labels{
	English: {
		alertTitle:   "🚀 <b>Buy signals</b>",
		resultsTitle: "📊 <b>Screening results</b>",
		tradesTitle:  "📒 <b>Trade log</b>",
		noTrades:     "No trades logged yet.",
		score:        "Score",
		price:        "Price",
		targets:      "Targets",
		stop:         "Stop",
		quantity:     "Qty",
		entry:        "Entry",
		fallback:     "ATR unavailable, 2% proxy used",
		help:         "Commands:\n• /screen run the watchlist now\n• /trades show the trade log\n• /help this message",
		signals: map[model.Signal]string{
			model.SignalStrongBuy: "STRONG BUY",
			model.SignalBuy:       "BUY",
			model.SignalHold:      "HOLD",
			model.SignalSell:      "SELL",
		},
		outlooks: map[model.Outlook]string{
			model.OutlookStrongUp: "strong up",
			model.OutlookUp:       "up",
			model.OutlookSideways: "sideways",
			model.OutlookDown:     "down",
		},
		statuses: map[model.Status]string{
			model.StatusNoData: "no data",
			model.StatusError:  "error",
		},
	},
	Arabic: {
		alertTitle:   "🚀 <b>إشارات شراء</b>",
		resultsTitle: "📊 <b>نتائج الفحص</b>",
		tradesTitle:  "📒 <b>سجل الصفقات</b>",
		noTrades:     "لا توجد صفقات مسجلة.",
		score:        "التقييم",
		price:        "السعر",
		targets:      "الأهداف",
		stop:         "وقف الخسارة",
		quantity:     "الكمية",
		entry:        "الدخول",
		fallback:     "ATR غير متاح، تم استخدام 2%",
		help:         "الأوامر:\n• /screen فحص القائمة الآن\n• /trades عرض سجل الصفقات\n• /help هذه الرسالة",
		signals: map[model.Signal]string{
			model.SignalStrongBuy: "شراء قوي",
			model.SignalBuy:       "شراء",
			model.SignalHold:      "انتظار",
			model.SignalSell:      "بيع",
		},
		outlooks: map[model.Outlook]string{
			model.OutlookStrongUp: "صعود قوي",
			model.OutlookUp:       "صعود",
			model.OutlookSideways: "عرضي",
			model.OutlookDown:     "هبوط",
		},
		statuses: map[model.Status]string{
			model.StatusNoData: "لا توجد بيانات",
			model.StatusError:  "خطأ",
		},
	},
}

func labelsFor(lang Language) labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets[English]
}

// SignalLabel returns the localized name of a signal.
func SignalLabel(lang Language, s model.Signal) string {
	return labelsFor(lang).signals[s]
}

// OutlookLabel returns the localized name of an outlook.
func OutlookLabel(lang Language, o model.Outlook) string {
	return labelsFor(lang).outlooks[o]
}

// HelpText lists the supported commands.
func HelpText(lang Language) string {
	return labelsFor(lang).help
}

// FormatAlerts renders actionable rows with optional headlines keyed by symbol.
func FormatAlerts(rows []model.ScreeningResult, headlines map[string]string, lang Language, at time.Time) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s\n", l.alertTitle, at.Format("2006-01-02 15:04"))
	for _, r := range rows {
		if r.Score == nil || r.Indicators == nil {
			continue
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "<b>%s</b> %s (%s) | %s %d\n",
			html.EscapeString(r.Symbol), l.signals[r.Score.Signal], l.outlooks[r.Score.Outlook], l.score, r.Score.Score)
		fmt.Fprintf(&b, "%s: %.2f", l.price, r.Indicators.Price)
		if r.Score.EntryType != model.EntryNone {
			fmt.Fprintf(&b, " | %s: %s", l.entry, r.Score.EntryType)
		}
		b.WriteString("\n")
		if s := r.Sizing; s != nil {
			fmt.Fprintf(&b, "%s: %.2f / %.2f / %.2f | %s: %.2f | %s: %d\n",
				l.targets, s.Target1, s.Target2, s.Target3, l.stop, s.StopLoss, l.quantity, s.Quantity)
			if s.ATRFallback {
				fmt.Fprintf(&b, "<i>%s</i>\n", l.fallback)
			}
		}
		if h := headlines[r.Symbol]; h != "" {
			fmt.Fprintf(&b, "📰 %s\n", html.EscapeString(h))
		}
	}
	return b.String()
}

// FormatResults renders a compact one-line-per-symbol table.
func FormatResults(rows []model.ScreeningResult, lang Language, at time.Time) string {
	l := labelsFor(lang)
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %s\n\n", l.resultsTitle, at.Format("2006-01-02 15:04"))
	for _, r := range rows {
		if r.Status != model.StatusOK || r.Score == nil || r.Indicators == nil {
			fmt.Fprintf(&b, "%s: %s\n", html.EscapeString(r.Symbol), l.statuses[r.Status])
			continue
		}
		fmt.Fprintf(&b, "%s: %.2f | %s | %d | RSI %.0f\n",
			html.EscapeString(r.Symbol), r.Indicators.Price, l.signals[r.Score.Signal], r.Score.Score, r.Indicators.RSI)
	}
	return b.String()
}

// FormatTrades renders the trade log, newest last.
func FormatTrades(entries []model.TradeLogEntry, lang Language) string {
	l := labelsFor(lang)
	if len(entries) == 0 {
		return l.noTrades
	}
	var b strings.Builder
	b.WriteString(l.tradesTitle + "\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s ×%d @ %.2f | %s %.2f | %s %.2f | $%s\n",
			e.CreatedAt.Format("01-02 15:04"), html.EscapeString(e.Symbol), e.Quantity, e.EntryPrice,
			l.targets, e.Target, l.stop, e.StopLoss, e.Notional().StringFixed(2))
	}
	return b.String()
}
