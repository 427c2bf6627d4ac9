// Package metrics exposes Prometheus instrumentation for the monitoring loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	cyclesTotal      prometheus.Counter
	cycleDuration    prometheus.Histogram
	quotesFetched    *prometheus.CounterVec
	fetchFailures    *prometheus.CounterVec
	changesDetected  prometheus.Counter
	recommendations  *prometheus.CounterVec
	transactionsDone prometheus.Counter
	portfolioValue   prometheus.Gauge
	snapshotsHeld    prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Registry: reg,
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxpulse_monitor_cycles_total",
			Help: "Total monitoring cycles run.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxpulse_monitor_cycle_duration_seconds",
			Help:    "Duration of monitoring cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		quotesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxpulse_quotes_fetched_total",
			Help: "Quotes fetched per pair.",
		}, []string{"pair"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxpulse_fetch_failures_total",
			Help: "Quote fetch failures per pair.",
		}, []string{"pair"}),
		changesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxpulse_rate_changes_total",
			Help: "Significant rate changes detected.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxpulse_recommendations_total",
			Help: "Trading recommendations generated per action.",
		}, []string{"action"}),
		transactionsDone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxpulse_transactions_total",
			Help: "Executed portfolio transactions.",
		}),
		portfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxpulse_portfolio_value",
			Help: "Estimated portfolio value in the base currency.",
		}),
		snapshotsHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxpulse_snapshots_retained",
			Help: "Rate snapshots currently retained.",
		}),
	}

	reg.MustRegister(
		r.cyclesTotal,
		r.cycleDuration,
		r.quotesFetched,
		r.fetchFailures,
		r.changesDetected,
		r.recommendations,
		r.transactionsDone,
		r.portfolioValue,
		r.snapshotsHeld,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns an HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// CycleRun records a completed cycle and its duration in seconds.
func (r *Registry) CycleRun(seconds float64) {
	r.cyclesTotal.Inc()
	r.cycleDuration.Observe(seconds)
}

// QuoteFetched records a successful quote fetch for a pair.
func (r *Registry) QuoteFetched(pair string) {
	r.quotesFetched.WithLabelValues(pair).Inc()
}

// FetchFailed records a failed quote fetch for a pair.
func (r *Registry) FetchFailed(pair string) {
	r.fetchFailures.WithLabelValues(pair).Inc()
}

// ChangesDetected records detected significant changes.
func (r *Registry) ChangesDetected(n int) {
	r.changesDetected.Add(float64(n))
}

// RecommendationMade records a generated recommendation.
func (r *Registry) RecommendationMade(action string) {
	r.recommendations.WithLabelValues(action).Inc()
}

// TransactionExecuted records an executed transaction.
func (r *Registry) TransactionExecuted() {
	r.transactionsDone.Inc()
}

// PortfolioValue sets the current portfolio value estimate.
func (r *Registry) PortfolioValue(v float64) {
	r.portfolioValue.Set(v)
}

// SnapshotsRetained sets the retained snapshot count.
func (r *Registry) SnapshotsRetained(n int) {
	r.snapshotsHeld.Set(float64(n))
}
