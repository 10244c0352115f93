package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockScreener/internal/model"
)

const sampleYAML = `
data_source:
  provider: yahoo
screen:
  symbols: [AAPL, MSFT, BRK.B]
  interval: 15m
  capital: 25000
  risk: high
  filter: BUY
cache:
  ttl_seconds: 60
schedule:
  refresh_cron: "0 */1 * * * *"
`

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, []string{"AAPL", "MSFT", "BRK.B"}, cfg.Screen.Symbols)
	require.Equal(t, time.Minute, cfg.CacheTTL())
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.False(t, cfg.TelegramEnabled())

	sc, err := cfg.ScreenConfig()
	require.NoError(t, err)
	require.Equal(t, model.ScreenConfig{
		Interval: model.Interval15m,
		Capital:  25000,
		Risk:     model.RiskHigh,
		Filter:   model.SignalFilter(model.SignalBuy),
	}, sc)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "yahoo", cfg.DataSource.Provider)
	require.Equal(t, 300, cfg.Cache.TTLSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCREEN_SYMBOLS", "nvda, amd ,")
	t.Setenv("SCREEN_CAPITAL", "750")
	t.Setenv("CACHE_TTL_SECONDS", "45")
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"NVDA", "AMD"}, cfg.Screen.Symbols)
	require.Equal(t, 750.0, cfg.Screen.Capital)
	require.Equal(t, 45, cfg.Cache.TTLSeconds)
}

func TestLoad_BadEnvIsRejected(t *testing.T) {
	t.Setenv("SCREEN_CAPITAL", "lots")
	_, err := Load(writeConfig(t, sampleYAML))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestLoad_ExplicitZeroIsRejected(t *testing.T) {
	for _, body := range []string{
		"screen:\n  capital: 0\n",
		"screen:\n  concurrency: 0\n",
		"cache:\n  ttl_seconds: 0\n",
	} {
		cfg, err := Load(writeConfig(t, body))
		require.NoError(t, err)
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration, body)
	}

	t.Setenv("SCREEN_CAPITAL", "0")
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.Screen.Capital)
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
}

func TestLoad_PartialSectionKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "screen:\n  risk: LOW\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10000.0, cfg.Screen.Capital)
	require.Equal(t, 4, cfg.Screen.Concurrency)
	require.Equal(t, "LOW", cfg.Screen.Risk)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"capital too small", func(c *Config) { c.Screen.Capital = 499 }},
		{"capital too large", func(c *Config) { c.Screen.Capital = 1_000_001 }},
		{"negative capital", func(c *Config) { c.Screen.Capital = -10 }},
		{"unknown risk", func(c *Config) { c.Screen.Risk = "EXTREME" }},
		{"unknown interval", func(c *Config) { c.Screen.Interval = "1h" }},
		{"unknown filter", func(c *Config) { c.Screen.Filter = "MAYBE" }},
		{"lowercase symbol", func(c *Config) { c.Screen.Symbols = []string{"aapl"} }},
		{"duplicate symbol", func(c *Config) { c.Screen.Symbols = []string{"AAPL", "AAPL"} }},
		{"ttl too short", func(c *Config) { c.Cache.TTLSeconds = 5 }},
		{"ttl too long", func(c *Config) { c.Cache.TTLSeconds = 3600 }},
		{"bad cron", func(c *Config) { c.Schedule.RefreshCron = "every five minutes" }},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"alpaca without keys", func(c *Config) { c.DataSource.Provider = "alpaca" }},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "token" }},
		{"unknown language", func(c *Config) { c.Telegram.Language = "fr" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			require.NoError(t, err)
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfiguration)
		})
	}
}

func TestParseSymbols(t *testing.T) {
	symbols, err := ParseSymbols(" aapl,NVDA,, tsla ,^gspc,BRK-B")
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "NVDA", "TSLA", "^GSPC", "BRK-B"}, symbols)

	for _, raw := range []string{"", " , ", "AAPL,aapl", "AA PL", "AAPL;MSFT", "TOOLONGSYMBOLNAME1"} {
		_, err := ParseSymbols(raw)
		require.ErrorIs(t, err, ErrInvalidConfiguration, raw)
	}
}

func TestParseScreenConfig(t *testing.T) {
	cfg, err := ParseScreenConfig("5m", "low", "all", 500)
	require.NoError(t, err)
	require.Equal(t, model.Interval5m, cfg.Interval)
	require.Equal(t, model.RiskLow, cfg.Risk)
	require.Equal(t, model.FilterAll, cfg.Filter)

	_, err = ParseScreenConfig("1d", "MEDIUM", "ALL", 0)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
