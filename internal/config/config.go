package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"StockScreener/internal/model"
)

// ErrInvalidConfiguration is wrapped by every validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		Language string `yaml:"language"` // en or ar
	} `yaml:"telegram"`
	DataSource struct {
		Provider  string `yaml:"provider"` // yahoo, alpaca or mock
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		BaseURL   string `yaml:"base_url"`
		Feed      string `yaml:"feed"`
	} `yaml:"data_source"`
	Screen struct {
		Symbols     []string `yaml:"symbols"`
		Interval    string   `yaml:"interval"`
		Capital     float64  `yaml:"capital"`
		Risk        string   `yaml:"risk"`
		Filter      string   `yaml:"filter"`
		Concurrency int      `yaml:"concurrency"`
	} `yaml:"screen"`
	Cache struct {
		TTLSeconds    int    `yaml:"ttl_seconds"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load starts from the defaults, overlays the YAML file, then applies .env
// and environment variable overrides. Keys present in the file or the
// environment replace the default even when zero; Validate rejects them.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	setStr(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.Telegram.Language, "TELEGRAM_LANGUAGE")
	setStr(&cfg.DataSource.Provider, "DATA_PROVIDER")
	setStr(&cfg.DataSource.APIKey, "ALPACA_API_KEY")
	setStr(&cfg.DataSource.APISecret, "ALPACA_API_SECRET")
	setStr(&cfg.DataSource.BaseURL, "ALPACA_BASE_URL")
	setStr(&cfg.Proxy, "HTTPS_PROXY")
	setStr(&cfg.Screen.Interval, "SCREEN_INTERVAL")
	setStr(&cfg.Screen.Risk, "SCREEN_RISK")
	setStr(&cfg.Screen.Filter, "SCREEN_FILTER")
	setStr(&cfg.Cache.RedisAddr, "REDIS_ADDR")
	setStr(&cfg.Cache.RedisPassword, "REDIS_PASSWORD")
	setStr(&cfg.Schedule.RefreshCron, "CRON_REFRESH")
	setStr(&cfg.Database.SQLitePath, "SQLITE_PATH")
	setStr(&cfg.Server.Addr, "SERVER_ADDR")

	if v := os.Getenv("SCREEN_SYMBOLS"); v != "" {
		symbols, err := ParseSymbols(v)
		if err != nil {
			return fmt.Errorf("SCREEN_SYMBOLS: %w", err)
		}
		cfg.Screen.Symbols = symbols
	}
	if v := os.Getenv("SCREEN_CAPITAL"); v != "" {
		capital, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SCREEN_CAPITAL %q: %w", v, ErrInvalidConfiguration)
		}
		cfg.Screen.Capital = capital
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL_SECONDS %q: %w", v, ErrInvalidConfiguration)
		}
		cfg.Cache.TTLSeconds = ttl
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Telegram.Language = "en"
	cfg.DataSource.Provider = "yahoo"
	cfg.Screen.Symbols = []string{"AAPL", "NVDA", "TSLA", "AMD", "PLUG"}
	cfg.Screen.Interval = string(model.IntervalDaily)
	cfg.Screen.Capital = 10000
	cfg.Screen.Risk = string(model.RiskMedium)
	cfg.Screen.Filter = string(model.FilterAll)
	cfg.Screen.Concurrency = 4
	cfg.Cache.TTLSeconds = 300
	cfg.Schedule.RefreshCron = "0 */5 * * * *"
	cfg.Database.SQLitePath = "data/trades.db"
	cfg.Server.Addr = ":8080"
	return cfg
}

// CacheTTL returns the series cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// TelegramEnabled reports whether alerts can be sent.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// ScreenConfig returns the validated default screening configuration.
func (c *Config) ScreenConfig() (model.ScreenConfig, error) {
	return ParseScreenConfig(c.Screen.Interval, c.Screen.Risk, c.Screen.Filter, c.Screen.Capital)
}

// Validate checks that all fields are usable before anything is screened.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "alpaca":
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			return invalid("data_source.api_key and api_secret are required for alpaca")
		}
	default:
		return invalid("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if _, err := c.ScreenConfig(); err != nil {
		return err
	}
	if err := ValidateSymbols(c.Screen.Symbols); err != nil {
		return err
	}
	if c.Screen.Concurrency < 1 || c.Screen.Concurrency > 32 {
		return invalid("screen.concurrency must be within [1, 32]")
	}
	if c.Cache.TTLSeconds < MinCacheTTLSeconds || c.Cache.TTLSeconds > MaxCacheTTLSeconds {
		return invalid("cache.ttl_seconds must be within [%d, %d]", MinCacheTTLSeconds, MaxCacheTTLSeconds)
	}
	if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).
		Parse(c.Schedule.RefreshCron); err != nil {
		return invalid("schedule.refresh_cron: %v", err)
	}
	if c.Telegram.Language != "en" && c.Telegram.Language != "ar" {
		return invalid("telegram.language %q is not supported", c.Telegram.Language)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return invalid("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// Cache lifetime bounds in seconds.
const (
	MinCacheTTLSeconds = 30
	MaxCacheTTLSeconds = 600
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfiguration)
}

// Capital bounds accepted for a screening run.
const (
	MinCapital = 500.0
	MaxCapital = 1_000_000.0
)

// ParseScreenConfig validates raw per-run settings. Nothing is coerced:
// unknown values are rejected.
func ParseScreenConfig(interval, risk, filter string, capital float64) (model.ScreenConfig, error) {
	cfg := model.ScreenConfig{
		Interval: model.IntervalClass(strings.TrimSpace(interval)),
		Risk:     model.RiskTier(strings.ToUpper(strings.TrimSpace(risk))),
		Filter:   model.SignalFilter(strings.ToUpper(strings.TrimSpace(filter))),
		Capital:  capital,
	}
	if !cfg.Interval.Valid() {
		return model.ScreenConfig{}, invalid("unknown interval %q", interval)
	}
	if _, ok := cfg.Risk.Factor(); !ok {
		return model.ScreenConfig{}, invalid("unknown risk tier %q", risk)
	}
	if !cfg.Filter.Valid() {
		return model.ScreenConfig{}, invalid("unknown signal filter %q", filter)
	}
	if !(capital >= MinCapital && capital <= MaxCapital) {
		return model.ScreenConfig{}, invalid("capital %v outside [%v, %v]", capital, MinCapital, MaxCapital)
	}
	return cfg, nil
}
