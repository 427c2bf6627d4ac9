package monitor

import (
	"fmt"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
)

// Config holds monitoring loop settings.
type Config struct {
	// Interval between monitoring cycles.
	Interval time.Duration
	// ChangeThresholdPct is the minimum absolute percentage move that counts
	// as a significant rate change.
	ChangeThresholdPct float64
	// Pairs are the monitored currency pairs, as "FROM/TO" labels.
	Pairs []string
	// MaxRiskPerTradePct caps a single trade at this percentage of total
	// portfolio value.
	MaxRiskPerTradePct float64
	// StopLossPct and TakeProfitPct are declared exit thresholds. They are
	// carried in the config but not enforced as automatic exits.
	StopLossPct   float64
	TakeProfitPct float64
	// BaseCurrency labels snapshots and anchors portfolio valuation.
	BaseCurrency string
	// FetchDelay is the fixed pause between per-pair quote fetches within a
	// cycle, throttling against upstream rate limits.
	FetchDelay time.Duration
	// HistoryCapacity bounds snapshot retention.
	HistoryCapacity int
}

// DefaultConfig returns the standard monitoring configuration.
func DefaultConfig() Config {
	return Config{
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
	}
}

// Validate rejects fatal misconfiguration at start-up.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.ChangeThresholdPct <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("change threshold must be positive, got %f", c.ChangeThresholdPct))
	}
	if len(c.Pairs) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("at least one monitored pair required"))
	}
	for _, pair := range c.Pairs {
		if _, _, ok := core.SplitPair(pair); !ok {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("malformed pair %q", pair))
		}
	}
	if c.MaxRiskPerTradePct <= 0 || c.MaxRiskPerTradePct > 100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max risk per trade must be in (0, 100], got %f", c.MaxRiskPerTradePct))
	}
	if c.BaseCurrency == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("base currency required"))
	}
	return nil
}
