package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockScreener/internal/cache/redis"
	"StockScreener/internal/collector"
	"StockScreener/internal/config"
	"StockScreener/internal/logger"
	"StockScreener/internal/news"
	"StockScreener/internal/notifier"
	"StockScreener/internal/recorder"
	"StockScreener/internal/scheduler"
	"StockScreener/internal/screener"
	"StockScreener/internal/server"
	"StockScreener/internal/server/ws"
)

func main() {
	log := logger.New()
	defer log.Sync()
	log.Info("StockScreener starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalw("load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalw("config validation", "error", err)
	}
	screenCfg, err := cfg.ScreenConfig()
	if err != nil {
		log.Fatalw("screen config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := newFetcher(cfg)
	log.Infow("data source", "provider", fetcher.Name())

	var cache collector.SeriesCache = collector.NewMemoryCache()
	if cfg.Cache.RedisAddr != "" {
		rc, err := redis.New(ctx, redis.ClientConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Warnw("redis unavailable, using in-memory cache", "addr", cfg.Cache.RedisAddr, "error", err)
		} else {
			defer rc.Close()
			cache = redis.NewSeriesCache(rc)
			log.Infow("series cache", "backend", "redis", "addr", cfg.Cache.RedisAddr)
		}
	}
	cached := collector.NewCachedFetcher(fetcher, cache, cfg.CacheTTL(), log)

	scr := screener.New(cached, log)
	scr.Concurrency = cfg.Screen.Concurrency

	var rec recorder.Recorder
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
	if err != nil {
		log.Warnw("init sqlite recorder failed, keeping trades in memory", "error", err)
		rec = recorder.NewMemoryRecorder()
	} else {
		rec = sr
	}
	defer rec.Close()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	lookup := news.NewFinvizLookup(cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, scr, rec, cfg.Screen.Symbols, screenCfg, log)
	sched.Publisher = hub
	sched.News = lookup
	sched.Language = notifier.Language(cfg.Telegram.Language)

	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		sched.Notifier = tn
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	} else {
		log.Info("telegram not configured, alerts disabled")
	}

	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalw("register cron tasks", "error", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunNow()
	}

	srv := (&server.Server{
		Screener:  scr,
		Scheduler: sched,
		Recorder:  rec,
		News:      lookup,
		Hub:       hub,
		Logger:    log,
		Symbols:   cfg.Screen.Symbols,
		Defaults:  screenCfg,
	}).HTTPServer(cfg.Server.Addr)

	go func() {
		log.Infow("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server", "error", err)
		}
	}()

	log.Info("StockScreener is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
	cancel()
	log.Info("StockScreener stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "alpaca":
		return collector.NewAlpacaFetcher(cfg.DataSource.APIKey, cfg.DataSource.APISecret, cfg.DataSource.BaseURL, cfg.DataSource.Feed)
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

