// Package monitor drives the continuous rate-monitoring cycle: snapshot,
// change detection, recommendation, and simulated execution.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/nvoss/fxpulse/internal/metrics"
	"github.com/nvoss/fxpulse/internal/notifier"
	"github.com/nvoss/fxpulse/internal/router"
	"github.com/nvoss/fxpulse/internal/storage/history"
	"go.uber.org/zap"
)

// Monitor owns the portfolio and runs the monitoring cycle on a timer. No
// other component mutates portfolio state.
type Monitor struct {
	cfg       Config
	logger    *zap.Logger
	source    collector.Source
	portfolio *Portfolio
	history   *history.SnapshotStore
	txlog     *history.TransactionLog
	metrics   *metrics.Registry
	router    *router.Router

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// CycleResult reports what a single monitoring cycle produced.
type CycleResult struct {
	Snapshot        core.RateSnapshot
	Changes         []core.RateChange
	Sentiment       Sentiment
	Recommendations []core.TradingRecommendation
	Transactions    []core.Transaction
}

// New creates a monitor over the given source and portfolio.
func New(cfg Config, source collector.Source, portfolio *Portfolio, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		cfg:       cfg,
		logger:    logger,
		source:    source,
		portfolio: portfolio,
		history:   history.NewSnapshotStore(cfg.HistoryCapacity),
		txlog:     history.NewTransactionLog(history.DefaultCapacity),
		metrics:   metrics.NewRegistry(),
	}
}

// SetRouter wires an optional recommendation router for notification fan-out.
func (m *Monitor) SetRouter(r *router.Router) {
	m.router = r
}

// Metrics returns the monitor's metrics registry.
func (m *Monitor) Metrics() *metrics.Registry {
	return m.metrics
}

// Portfolio returns the monitored portfolio.
func (m *Monitor) Portfolio() *Portfolio {
	return m.portfolio
}

// History returns the retained snapshot store.
func (m *Monitor) History() *history.SnapshotStore {
	return m.history
}

// Transactions returns the retained executed transactions, oldest first.
func (m *Monitor) Transactions() []core.Transaction {
	return m.txlog.All()
}

// Running reports whether the monitoring loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start runs the monitoring loop until the context is cancelled or Stop is
// called. The first snapshot establishes the baseline; diffing begins on the
// second cycle.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("monitor already running")
	}
	m.running = true

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	m.logger.Info("monitor starting",
		zap.Int("pairs", len(m.cfg.Pairs)),
		zap.Duration("interval", m.cfg.Interval),
		zap.Float64("change_threshold_pct", m.cfg.ChangeThresholdPct),
	)

	// Baseline snapshot
	snap := m.capture(ctx)
	m.history.Append(snap)
	m.metrics.SnapshotsRetained(m.history.Len())

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor shutting down")
			m.mu.Lock()
			m.running = false
			m.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// Stop cancels the monitoring loop.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

// RunOnce performs a single monitoring cycle and reports what it produced.
// Per-pair and per-recommendation failures are logged and skipped; a cycle
// never returns an error to its caller.
func (m *Monitor) RunOnce(ctx context.Context) CycleResult {
	start := time.Now()
	var result CycleResult

	result.Snapshot = m.capture(ctx)

	if prev, ok := m.history.Last(); ok {
		result.Changes = Diff(prev, result.Snapshot, m.cfg.ChangeThresholdPct)
		m.metrics.ChangesDetected(len(result.Changes))

		if len(result.Changes) > 0 {
			result.Sentiment = Summarize(result.Changes)
			m.logger.Info("significant rate changes detected",
				zap.Int("count", len(result.Changes)),
				zap.Int("bullish", result.Sentiment.Bullish),
				zap.Int("bearish", result.Sentiment.Bearish),
			)

			value := m.portfolio.TotalValue(ctx, m.source)
			m.metrics.PortfolioValue(value)

			result.Recommendations = Recommend(result.Changes, value,
				m.portfolio.Holdings(), m.cfg.MaxRiskPerTradePct, result.Sentiment)

			for _, rec := range result.Recommendations {
				m.metrics.RecommendationMade(string(rec.Action))

				tx := m.execute(ctx, rec)
				if tx != nil {
					result.Transactions = append(result.Transactions, *tx)
				}

				if m.router != nil {
					if err := m.router.Route(routeEvent(rec, tx)); err != nil {
						m.logger.Error("routing recommendation failed", zap.Error(err))
					}
				}
			}
		} else {
			m.logger.Debug("no significant changes detected")
		}
	}

	m.history.Append(result.Snapshot)
	m.metrics.SnapshotsRetained(m.history.Len())
	m.metrics.CycleRun(time.Since(start).Seconds())

	return result
}

// capture fetches one quote per monitored pair sequentially, building a new
// snapshot. A failed pair is logged and omitted, never aborting the cycle.
// The fixed delay between fetches throttles against upstream rate limits.
func (m *Monitor) capture(ctx context.Context) core.RateSnapshot {
	rates := make(map[string]float64, len(m.cfg.Pairs))

	for i, pair := range m.cfg.Pairs {
		if ctx.Err() != nil {
			break
		}

		from, to, ok := core.SplitPair(pair)
		if !ok {
			m.logger.Warn("skipping malformed pair", zap.String("pair", pair))
			continue
		}

		quote, err := m.source.FetchQuote(ctx, from, to)
		if err != nil {
			m.metrics.FetchFailed(pair)
			m.logger.Warn("failed to fetch rate",
				zap.String("pair", pair),
				zap.Error(err),
			)
		} else {
			m.metrics.QuoteFetched(pair)
			rates[pair] = quote.Price
		}

		if i < len(m.cfg.Pairs)-1 {
			sleepCtx(ctx, m.cfg.FetchDelay)
		}
	}

	return core.RateSnapshot{
		Time:         time.Now().UTC(),
		BaseCurrency: m.cfg.BaseCurrency,
		Rates:        rates,
	}
}

// execute re-fetches a fresh quote for the recommendation's pair and applies
// it to the portfolio. Fetch failure or insufficient balance aborts only this
// recommendation.
func (m *Monitor) execute(ctx context.Context, rec core.TradingRecommendation) *core.Transaction {
	quote, err := m.source.FetchQuote(ctx, rec.FromCurrency, rec.ToCurrency)
	if err != nil {
		m.metrics.FetchFailed(core.PairLabel(rec.FromCurrency, rec.ToCurrency))
		m.logger.Warn("failed to fetch execution rate",
			zap.String("from", rec.FromCurrency),
			zap.String("to", rec.ToCurrency),
			zap.Error(err),
		)
		return nil
	}

	tx, err := m.portfolio.Execute(rec, *quote)
	if err != nil {
		m.logger.Warn("recommendation rejected",
			zap.String("action", string(rec.Action)),
			zap.String("from", rec.FromCurrency),
			zap.String("to", rec.ToCurrency),
			zap.Float64("amount", rec.Amount),
			zap.Error(err),
		)
		return nil
	}

	m.txlog.Append(*tx)
	m.metrics.TransactionExecuted()
	m.logger.Info("transaction executed",
		zap.String("id", tx.ID),
		zap.Float64("amount_from", tx.AmountFrom),
		zap.String("from", tx.FromCurrency),
		zap.Float64("amount_to", tx.AmountTo),
		zap.String("to", tx.ToCurrency),
		zap.Float64("rate", tx.Rate),
	)

	return tx
}

// Summary values the portfolio via the monitor's source.
func (m *Monitor) Summary(ctx context.Context) Summary {
	return m.portfolio.Summarize(ctx, m.source)
}

func routeEvent(rec core.TradingRecommendation, tx *core.Transaction) notifier.Event {
	return notifier.Event{Recommendation: rec, Transaction: tx}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
