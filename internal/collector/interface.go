// Package collector defines the market-data collaborator contract.
package collector

import (
	"context"

	"github.com/nvoss/fxpulse/internal/core"
)

// Interval selects the granularity of a historical series.
type Interval string

const (
	IntervalIntraday Interval = "1min"
	IntervalDaily    Interval = "daily"
)

// Source provides forex quotes and historical OHLC series.
//
// Implementations own their network timeouts and retries; callers treat every
// failure as a plain error value and decide per call site whether it is fatal.
type Source interface {
	Name() string

	// FetchQuote returns a point-in-time quote for the from/to pair.
	FetchQuote(ctx context.Context, from, to string) (*core.Quote, error)

	// FetchSeries returns a normalized (ascending, deduplicated) OHLC series.
	FetchSeries(ctx context.Context, from, to string, interval Interval) (core.PriceSeries, error)
}
