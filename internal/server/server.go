// Package server exposes screening, the last refresh snapshot and the trade
// log over HTTP, plus a WebSocket feed of refresh events.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StockScreener/internal/config"
	"StockScreener/internal/model"
	"StockScreener/internal/news"
	"StockScreener/internal/recorder"
	"StockScreener/internal/scheduler"
	"StockScreener/internal/screener"
	"StockScreener/internal/server/ws"
)

// Server wires HTTP handlers to the screening services.
type Server struct {
	Screener  *screener.Screener
	Scheduler *scheduler.Scheduler
	Recorder  recorder.Recorder
	News      news.Lookup
	Hub       *ws.Hub
	Logger    *zap.SugaredLogger

	// Defaults applied to /api/screen query parameters that are omitted.
	Symbols  []string
	Defaults model.ScreenConfig
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default(), s.logRequest)

	api := router.Group("/api")
	api.GET("/health", s.health)
	api.GET("/screen", s.screen)
	api.GET("/latest", s.latest)
	api.POST("/refresh", s.refresh)
	api.GET("/trades", s.listTrades)
	api.POST("/trades", s.appendTrade)
	api.GET("/news/:symbol", s.headline)

	if s.Hub != nil {
		router.GET("/ws", gin.WrapF(s.Hub.HandleWS))
	}
	return router
}

// HTTPServer returns an http.Server bound to addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.Logger.Debugw("http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start))
}

func returnErrorJSON(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if s.Hub != nil {
		resp["ws_clients"] = s.Hub.ClientCount()
	}
	if s.Scheduler != nil {
		if snap, ok := s.Scheduler.Latest(); ok {
			resp["last_refresh"] = snap.RefreshedAt
		}
	}
	c.JSON(http.StatusOK, resp)
}

type screenResponse struct {
	Results     []model.ScreeningResult `json:"results"`
	Summary     screener.Summary        `json:"summary"`
	Config      model.ScreenConfig      `json:"config"`
	RefreshedAt *time.Time              `json:"refreshed_at,omitempty"`
}

// screenParams parses the optional query parameters, falling back to defaults.
func (s *Server) screenParams(c *gin.Context) ([]string, model.ScreenConfig, error) {
	symbols := s.Symbols
	if raw := c.Query("symbols"); raw != "" {
		parsed, err := config.ParseSymbols(raw)
		if err != nil {
			return nil, model.ScreenConfig{}, err
		}
		symbols = parsed
	}

	capital := s.Defaults.Capital
	if raw := c.Query("capital"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, model.ScreenConfig{}, fmt.Errorf("capital %q is not a number: %w", raw, config.ErrInvalidConfiguration)
		}
		capital = v
	}

	cfg, err := config.ParseScreenConfig(
		c.DefaultQuery("interval", string(s.Defaults.Interval)),
		c.DefaultQuery("risk", string(s.Defaults.Risk)),
		c.DefaultQuery("filter", string(s.Defaults.Filter)),
		capital,
	)
	return symbols, cfg, err
}

func (s *Server) screen(c *gin.Context) {
	symbols, cfg, err := s.screenParams(c)
	if err != nil {
		returnErrorJSON(c, http.StatusBadRequest, err)
		return
	}
	results := s.Screener.Screen(c.Request.Context(), symbols, cfg)
	c.JSON(http.StatusOK, screenResponse{
		Results: screener.Filter(results, cfg.Filter),
		Summary: screener.Summarize(results),
		Config:  cfg,
	})
}

func snapshotResponse(snap scheduler.Snapshot) screenResponse {
	at := snap.RefreshedAt
	return screenResponse{
		Results:     screener.Filter(snap.Results, snap.Config.Filter),
		Summary:     snap.Summary,
		Config:      snap.Config,
		RefreshedAt: &at,
	}
}

func (s *Server) latest(c *gin.Context) {
	snap, ok := s.Scheduler.Latest()
	if !ok {
		returnErrorJSON(c, http.StatusNotFound, errors.New("no refresh has completed yet"))
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(snap))
}

func (s *Server) refresh(c *gin.Context) {
	// The snapshot is shared; a client hanging up must not cut the run short.
	c.JSON(http.StatusOK, snapshotResponse(s.Scheduler.Refresh(context.WithoutCancel(c.Request.Context()))))
}

func (s *Server) listTrades(c *gin.Context) {
	entries, err := s.Recorder.List(c.Request.Context())
	if err != nil {
		s.Logger.Errorw("list trades", "error", err)
		returnErrorJSON(c, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []model.TradeLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"trades": entries})
}

type tradeRequest struct {
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	Quantity   int     `json:"quantity"`
	Target     float64 `json:"target"`
	StopLoss   float64 `json:"stop_loss"`
	Score      int     `json:"score"`
}

func (s *Server) appendTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJSON(c, http.StatusBadRequest, err)
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if err := config.ValidateSymbols([]string{symbol}); err != nil {
		returnErrorJSON(c, http.StatusBadRequest, err)
		return
	}
	entry := model.TradeLogEntry{
		Symbol:     symbol,
		EntryPrice: req.EntryPrice,
		Quantity:   req.Quantity,
		Target:     req.Target,
		StopLoss:   req.StopLoss,
		Score:      req.Score,
	}
	if err := s.Recorder.Append(c.Request.Context(), &entry); err != nil {
		if errors.Is(err, recorder.ErrInvalidTrade) {
			returnErrorJSON(c, http.StatusBadRequest, err)
			return
		}
		s.Logger.Errorw("append trade", "symbol", req.Symbol, "error", err)
		returnErrorJSON(c, http.StatusInternalServerError, err)
		return
	}
	s.Logger.Infow("trade logged", "id", entry.ID, "symbol", entry.Symbol, "notional", entry.Notional().String())
	c.JSON(http.StatusCreated, gin.H{
		"trade":       entry,
		"notional":    entry.Notional().StringFixed(2),
		"risk_amount": entry.RiskAmount().StringFixed(2),
	})
}

func (s *Server) headline(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if err := config.ValidateSymbols([]string{symbol}); err != nil {
		returnErrorJSON(c, http.StatusBadRequest, err)
		return
	}
	if s.News == nil {
		returnErrorJSON(c, http.StatusServiceUnavailable, errors.New("news lookup disabled"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()
	h, err := s.News.LatestHeadline(ctx, symbol)
	if err != nil {
		s.Logger.Warnw("headline lookup failed", "symbol", symbol, "error", err)
		returnErrorJSON(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "headline": h})
}
