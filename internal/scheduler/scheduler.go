package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StockScreener/internal/model"
	"StockScreener/internal/news"
	"StockScreener/internal/notifier"
	"StockScreener/internal/recorder"
	"StockScreener/internal/screener"
)

// EventRefresh is published after every completed refresh.
const EventRefresh = "refresh"

// Alerter delivers alert text, typically to Telegram.
type Alerter interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Publisher pushes events to live subscribers.
type Publisher interface {
	Publish(event string, payload any)
}

// Snapshot is the outcome of the most recent refresh. Results must not be
// mutated by readers.
type Snapshot struct {
	Results     []model.ScreeningResult `json:"results"`
	Summary     screener.Summary        `json:"summary"`
	Config      model.ScreenConfig      `json:"config"`
	RefreshedAt time.Time               `json:"refreshed_at"`
}

// Scheduler re-screens the watchlist on a cron schedule and owns the last snapshot.
type Scheduler struct {
	Cron      *cron.Cron
	Screener  *screener.Screener
	Recorder  recorder.Recorder
	Notifier  Alerter
	News      news.Lookup
	Publisher Publisher
	Logger    *zap.SugaredLogger
	Ctx       context.Context

	Symbols  []string
	Config   model.ScreenConfig
	Language notifier.Language

	now       func() time.Time
	refreshMu sync.Mutex
	mu        sync.RWMutex
	latest    *Snapshot
}

// NewScheduler creates a new Scheduler. Notifier, News and Publisher are optional.
func NewScheduler(ctx context.Context, scr *screener.Screener, rec recorder.Recorder, symbols []string, cfg model.ScreenConfig, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Screener: scr,
		Recorder: rec,
		Logger:   logger,
		Ctx:      ctx,
		Symbols:  symbols,
		Config:   cfg,
		Language: notifier.English,
		now:      time.Now,
	}
}

// Register schedules the watchlist refresh.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, func() { s.Refresh(s.Ctx) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes a refresh immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() Snapshot {
	return s.Refresh(s.Ctx)
}

// Latest returns the last snapshot, if any refresh has completed.
func (s *Scheduler) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

// Refresh screens the watchlist, stores the snapshot, publishes it and
// alerts on actionable rows. Concurrent calls are serialized. A run whose
// ctx ends before screening completes is returned but not stored.
func (s *Scheduler) Refresh(ctx context.Context) Snapshot {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	results := s.Screener.Screen(ctx, s.Symbols, s.Config)
	snap := Snapshot{
		Results:     results,
		Summary:     screener.Summarize(results),
		Config:      s.Config,
		RefreshedAt: s.now(),
	}
	if err := ctx.Err(); err != nil {
		s.Logger.Warnw("refresh cancelled, keeping previous snapshot", "error", err)
		return snap
	}

	s.mu.Lock()
	s.latest = &snap
	s.mu.Unlock()

	s.Logger.Infow("refresh complete",
		"symbols", len(s.Symbols),
		"ok", snap.Summary.ByStatus[model.StatusOK],
		"elapsed", snap.RefreshedAt.Sub(start))

	if s.Publisher != nil {
		s.Publisher.Publish(EventRefresh, snap)
	}
	s.alert(ctx, snap)
	return snap
}

func (s *Scheduler) alert(ctx context.Context, snap Snapshot) {
	if s.Notifier == nil {
		return
	}
	rows := screener.Actionable(snap.Results)
	if len(rows) == 0 {
		return
	}
	headlines := make(map[string]string, len(rows))
	if s.News != nil {
		for _, r := range rows {
			h, err := s.News.LatestHeadline(ctx, r.Symbol)
			if err != nil {
				s.Logger.Warnw("headline lookup failed", "symbol", r.Symbol, "error", err)
				continue
			}
			headlines[r.Symbol] = h
		}
	}
	msg := notifier.FormatAlerts(rows, headlines, s.Language, snap.RefreshedAt)
	if err := s.Notifier.SendWithRetry(ctx, msg, 3); err != nil {
		s.Logger.Errorw("send alert", "error", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	cmd, _, _ := strings.Cut(strings.TrimSpace(command), " ")
	cmd, _, _ = strings.Cut(cmd, "@")

	switch strings.ToLower(cmd) {
	case "/screen":
		snap := s.Refresh(ctx)
		return notifier.FormatResults(screener.Filter(snap.Results, snap.Config.Filter), s.Language, snap.RefreshedAt)
	case "/trades":
		entries, err := s.Recorder.List(ctx)
		if err != nil {
			s.Logger.Errorw("list trades", "error", err)
			return "trade log unavailable"
		}
		return notifier.FormatTrades(entries, s.Language)
	default:
		return notifier.HelpText(s.Language)
	}
}
