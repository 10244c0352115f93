package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockScreener/internal/collector"
	"StockScreener/internal/model"
	"StockScreener/internal/recorder"
	"StockScreener/internal/scheduler"
	"StockScreener/internal/screener"
)

type fakeNews struct{}

func (fakeNews) LatestHeadline(_ context.Context, symbol string) (string, error) {
	if symbol == "DOWN" {
		return "", errors.New("unreachable")
	}
	return symbol + " rallies", nil
}

// ctxFetcher fails once the request context is done, like a network fetcher.
type ctxFetcher struct {
	collector.Fetcher
}

func (f ctxFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.Fetcher.FetchSeries(ctx, symbol, period, interval)
}

func newTestServer(t *testing.T) *Server {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()
	fetcher := ctxFetcher{&collector.MockFetcher{
		Price: 100,
		Errs:  map[string]error{"GONE": collector.ErrNoData},
	}}
	defaults := model.ScreenConfig{Interval: model.IntervalDaily, Capital: 10000, Risk: model.RiskMedium, Filter: model.FilterAll}
	scr := screener.New(fetcher, logger)
	rec := recorder.NewMemoryRecorder()
	symbols := []string{"AAPL", "GONE"}

	return &Server{
		Screener:  scr,
		Scheduler: scheduler.NewScheduler(context.Background(), scr, rec, symbols, defaults, logger),
		Recorder:  rec,
		News:      fakeNews{},
		Logger:    logger,
		Symbols:   symbols,
		Defaults:  defaults,
	}
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decode[map[string]any](t, w)["status"])
}

func TestScreen_Defaults(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/api/screen", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[screenResponse](t, w)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "AAPL", resp.Results[0].Symbol)
	require.Equal(t, model.StatusOK, resp.Results[0].Status)
	require.Equal(t, model.StatusNoData, resp.Results[1].Status)
	require.Equal(t, 2, resp.Summary.Total)
}

func TestScreen_QueryParameters(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/api/screen?symbols=msft,nvda&interval=15m&risk=high&capital=5000&filter=HOLD", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[screenResponse](t, w)
	require.Equal(t, model.Interval15m, resp.Config.Interval)
	require.Equal(t, model.RiskHigh, resp.Config.Risk)
	require.Equal(t, 2, resp.Summary.Total)
	for _, r := range resp.Results {
		require.Equal(t, model.SignalHold, r.Score.Signal)
	}
}

func TestScreen_RejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)
	for _, q := range []string{
		"capital=100",
		"capital=abc",
		"risk=EXTREME",
		"interval=1h",
		"filter=MAYBE",
		"symbols=AAPL,AAPL",
		"symbols=$$$",
	} {
		w := do(t, s, http.MethodGet, "/api/screen?"+q, "")
		require.Equal(t, http.StatusBadRequest, w.Code, q)
		require.Contains(t, decode[map[string]string](t, w)["error"], "invalid", q)
	}
}

func TestLatestAndRefresh(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/latest", "").Code)

	w := do(t, s, http.MethodPost, "/api/refresh", "")
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decode[screenResponse](t, w)
	require.NotNil(t, refreshed.RefreshedAt)

	w = do(t, s, http.MethodGet, "/api/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	latest := decode[screenResponse](t, w)
	require.WithinDuration(t, *refreshed.RefreshedAt, *latest.RefreshedAt, time.Millisecond)
	require.Len(t, latest.Results, 2)
}

func TestRefresh_ClientDisconnectKeepsSnapshot(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/refresh", "").Code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil).WithContext(ctx)
	s.Router().ServeHTTP(httptest.NewRecorder(), req)

	w := do(t, s, http.MethodGet, "/api/latest", "")
	require.Equal(t, http.StatusOK, w.Code)
	latest := decode[screenResponse](t, w)
	require.Equal(t, model.StatusOK, latest.Results[0].Status)
	require.Equal(t, model.StatusNoData, latest.Results[1].Status)
}

func TestTrades(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/trades", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"trades":[]}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/trades", `{"symbol":"aapl","entry_price":100.1,"quantity":3,"target":102,"stop_loss":97.6,"score":80}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)
	require.Equal(t, "300.30", created["notional"])
	require.Equal(t, "7.50", created["risk_amount"])

	w = do(t, s, http.MethodPost, "/api/trades", `{"symbol":"AAPL","entry_price":-1,"quantity":3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, s, http.MethodPost, "/api/trades", `{"symbol":"bad$sym","entry_price":10,"quantity":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decode[map[string]string](t, w)["error"], "malformed symbol")
	w = do(t, s, http.MethodPost, "/api/trades", `{"symbol":"","entry_price":10,"quantity":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, s, http.MethodPost, "/api/trades", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/trades", "")
	trades := decode[struct {
		Trades []model.TradeLogEntry `json:"trades"`
	}](t, w)
	require.Len(t, trades.Trades, 1)
	require.Equal(t, "AAPL", trades.Trades[0].Symbol)
	require.NotEmpty(t, trades.Trades[0].ID)
}

func TestHeadline(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/news/nvda", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "NVDA rallies", decode[map[string]string](t, w)["headline"])

	require.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/api/news/bad$sym", "").Code)
	require.Equal(t, http.StatusBadGateway, do(t, s, http.MethodGet, "/api/news/DOWN", "").Code)

	s.News = nil
	require.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/api/news/NVDA", "").Code)
}
