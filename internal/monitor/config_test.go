package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Interval != 60*time.Second {
		t.Errorf("interval = %s, want 60s", cfg.Interval)
	}
	if len(cfg.Pairs) != 8 {
		t.Errorf("pairs = %d, want 8", len(cfg.Pairs))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr *core.Error
	}{
		{"zero interval", func(c *Config) { c.Interval = 0 }, core.ErrConfigInvalid},
		{"negative threshold", func(c *Config) { c.ChangeThresholdPct = -1 }, core.ErrConfigInvalid},
		{"no pairs", func(c *Config) { c.Pairs = nil }, core.ErrConfigMissing},
		{"malformed pair", func(c *Config) { c.Pairs = []string{"USDEUR"} }, core.ErrConfigInvalid},
		{"zero risk", func(c *Config) { c.MaxRiskPerTradePct = 0 }, core.ErrConfigInvalid},
		{"risk over 100", func(c *Config) { c.MaxRiskPerTradePct = 150 }, core.ErrConfigInvalid},
		{"no base currency", func(c *Config) { c.BaseCurrency = "" }, core.ErrConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want code %s", err, tt.wantErr.Code)
			}
		})
	}
}
