// Package staticsrc provides a deterministic in-memory market-data source for
// tests and offline runs.
package staticsrc

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
)

// Source serves configurable fixture rates. Pairs without an explicit rate or
// series fail with core.ErrFetchFailed, which lets tests exercise the per-pair
// failure paths.
type Source struct {
	mu         sync.RWMutex
	rates      map[string]float64
	series     map[string]core.PriceSeries
	spread     float64
	quoteCalls int
}

// New creates an empty static source with a default half-pip spread.
func New() *Source {
	return &Source{
		rates:  make(map[string]float64),
		series: make(map[string]core.PriceSeries),
		spread: 0.0005,
	}
}

func (s *Source) Name() string {
	return "static"
}

// SetRate fixes the rate served for a pair.
func (s *Source) SetRate(from, to string, rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[core.PairLabel(from, to)] = rate
}

// SetSpread fixes the bid-ask spread applied around the mid rate.
func (s *Source) SetSpread(spread float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spread = spread
}

// SetSeries fixes the historical series served for a pair.
func (s *Source) SetSeries(from, to string, series core.PriceSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[core.PairLabel(from, to)] = series
}

// Remove drops a pair so subsequent fetches fail.
func (s *Source) Remove(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rates, core.PairLabel(from, to))
}

// QuoteCalls reports how many quote fetches have been served or rejected.
func (s *Source) QuoteCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quoteCalls
}

func (s *Source) FetchQuote(ctx context.Context, from, to string) (*core.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.quoteCalls++
	rate, ok := s.rates[core.PairLabel(from, to)]
	spread := s.spread
	s.mu.Unlock()

	if !ok {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("no rate configured for %s/%s", from, to))
	}

	return &core.Quote{
		Pair:   core.PairLabel(from, to),
		Bid:    rate - spread/2,
		Ask:    rate + spread/2,
		Price:  rate,
		Time:   time.Now().UTC(),
		Source: s.Name(),
	}, nil
}

func (s *Source) FetchSeries(ctx context.Context, from, to string, interval collector.Interval) (core.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	series, ok := s.series[core.PairLabel(from, to)]
	s.mu.RUnlock()

	if !ok {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("no series configured for %s/%s", from, to))
	}
	return series, nil
}

// GenerateSeries builds a smooth sine-modulated series of n daily bars around
// the given base rate, useful for seeding indicator input.
func GenerateSeries(base float64, n int) core.PriceSeries {
	series := make(core.PriceSeries, n)
	start := time.Now().UTC().AddDate(0, 0, -n)
	for i := 0; i < n; i++ {
		c := base * (1 + 0.004*math.Sin(float64(i)/6))
		series[i] = core.OHLC{
			Open:  c * 0.9995,
			High:  c * 1.0015,
			Low:   c * 0.9985,
			Close: c,
			Time:  start.AddDate(0, 0, i),
		}
	}
	return series
}
