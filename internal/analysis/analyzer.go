// Package analysis exposes the one-shot analysis surface: full technical
// analysis of a single pair and a quote overview across many pairs.
package analysis

import (
	"context"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/nvoss/fxpulse/internal/indicator"
	"github.com/nvoss/fxpulse/internal/signal"
	"go.uber.org/zap"
)

// Analyzer runs the indicator/signal pipeline against a market-data source.
type Analyzer struct {
	source collector.Source
	logger *zap.Logger
}

// New creates an analyzer over the given source.
func New(source collector.Source, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{source: source, logger: logger}
}

// PairAnalysis bundles the outputs of a full single-pair analysis.
type PairAnalysis struct {
	Quote      core.Quote
	Indicators core.IndicatorBundle
	Signal     core.TradingSignal
}

// AnalyzePair fetches the current quote and a historical series for the pair,
// computes indicators, and generates a trading signal. An indicator failure
// (typically a too-short series) propagates: no signal without indicators.
func (a *Analyzer) AnalyzePair(ctx context.Context, from, to string, interval collector.Interval) (*PairAnalysis, error) {
	quote, err := a.source.FetchQuote(ctx, from, to)
	if err != nil {
		return nil, err
	}

	series, err := a.source.FetchSeries(ctx, from, to, interval)
	if err != nil {
		return nil, err
	}

	indicators, err := indicator.Compute(series)
	if err != nil {
		return nil, err
	}

	sig := signal.Generate(*quote, *indicators)

	a.logger.Debug("pair analyzed",
		zap.String("pair", quote.Pair),
		zap.String("signal", string(sig.Type)),
		zap.Float64("confidence", sig.Confidence),
	)

	return &PairAnalysis{
		Quote:      *quote,
		Indicators: *indicators,
		Signal:     sig,
	}, nil
}

// PairOverview is one line of a market overview.
type PairOverview struct {
	Pair  string
	Quote *core.Quote
	Err   error
}

// Overview fetches a quote for each pair. Per-pair failures are recorded in
// the result rather than aborting the sweep.
func (a *Analyzer) Overview(ctx context.Context, pairs []string) []PairOverview {
	overview := make([]PairOverview, 0, len(pairs))

	for _, pair := range pairs {
		if ctx.Err() != nil {
			break
		}

		from, to, ok := core.SplitPair(pair)
		if !ok {
			overview = append(overview, PairOverview{Pair: pair, Err: core.ErrInvalidPair})
			continue
		}

		quote, err := a.source.FetchQuote(ctx, from, to)
		if err != nil {
			a.logger.Warn("overview fetch failed", zap.String("pair", pair), zap.Error(err))
			overview = append(overview, PairOverview{Pair: pair, Err: err})
			continue
		}
		overview = append(overview, PairOverview{Pair: pair, Quote: quote})
	}

	return overview
}
