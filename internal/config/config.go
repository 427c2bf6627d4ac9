// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Monitor   MonitorConfig             `mapstructure:"monitor"`
	Collector CollectorConfig           `mapstructure:"collector"`
	Portfolio PortfolioConfig           `mapstructure:"portfolio"`
	Router    RouterConfig              `mapstructure:"router"`
	Notifiers map[string]NotifierConfig `mapstructure:"notifiers"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
}

// MonitorConfig holds monitoring loop settings.
type MonitorConfig struct {
	Interval           time.Duration `mapstructure:"interval"`
	ChangeThresholdPct float64       `mapstructure:"change_threshold_pct"`
	Pairs              []string      `mapstructure:"pairs"`
	MaxRiskPerTradePct float64       `mapstructure:"max_risk_per_trade_pct"`
	StopLossPct        float64       `mapstructure:"stop_loss_pct"`
	TakeProfitPct      float64       `mapstructure:"take_profit_pct"`
	BaseCurrency       string        `mapstructure:"base_currency"`
	FetchDelay         time.Duration `mapstructure:"fetch_delay"`
	HistoryCapacity    int           `mapstructure:"history_capacity"`
}

// CollectorConfig holds market-data source settings.
type CollectorConfig struct {
	Provider       string        `mapstructure:"provider"` // "alphavantage" or "static"
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerMin int           `mapstructure:"requests_per_min"`
}

// PortfolioConfig holds the simulated portfolio's initial funding.
type PortfolioConfig struct {
	InitialAmount   float64 `mapstructure:"initial_amount"`
	InitialCurrency string  `mapstructure:"initial_currency"`
}

// RouterConfig holds recommendation routing settings.
type RouterConfig struct {
	MinConfidence float64       `mapstructure:"min_confidence"`
	Cooldown      time.Duration `mapstructure:"cooldown"`
}

// NotifierConfig holds per-notifier settings.
type NotifierConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

// MetricsConfig holds metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Interval:           60 * time.Second,
			ChangeThresholdPct: 0.5,
			Pairs: []string{
				"USD/EUR", "USD/GBP", "USD/JPY", "EUR/GBP",
				"GBP/JPY", "USD/CHF", "USD/CAD", "AUD/USD",
			},
			MaxRiskPerTradePct: 10.0,
			StopLossPct:        -2.0,
			TakeProfitPct:      3.0,
			BaseCurrency:       "USD",
			FetchDelay:         100 * time.Millisecond,
			HistoryCapacity:    100,
		},
		Collector: CollectorConfig{
			Provider:       "alphavantage",
			Timeout:        30 * time.Second,
			RequestsPerMin: 5,
		},
		Portfolio: PortfolioConfig{
			InitialAmount:   1000,
			InitialCurrency: "USD",
		},
		Router: RouterConfig{
			MinConfidence: 0.5,
			Cooldown:      15 * time.Minute,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Collector.Provider {
	case "alphavantage", "static":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown collector provider %q", c.Collector.Provider))
	}

	if c.Collector.Provider == "alphavantage" && c.Collector.APIKey == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("api_key required for alphavantage collector"))
	}

	if c.Portfolio.InitialAmount <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_amount must be positive, got %f", c.Portfolio.InitialAmount))
	}
	if c.Portfolio.InitialCurrency == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("initial_currency required"))
	}

	if c.Router.MinConfidence < 0 || c.Router.MinConfidence > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("min_confidence must be between 0 and 1, got %f", c.Router.MinConfidence))
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics addr required when metrics enabled"))
	}

	return nil
}
