// Package router filters trading recommendations and fans them out to
// notifiers.
package router

import (
	"sync"
	"time"

	"github.com/nvoss/fxpulse/internal/notifier"
	"go.uber.org/zap"
)

// Config holds router configuration
type Config struct {
	// MinConfidence drops recommendations below this confidence.
	MinConfidence float64
	// CooldownDuration suppresses repeat notifications for the same pair.
	CooldownDuration time.Duration
}

// DefaultConfig returns default router configuration
func DefaultConfig() Config {
	return Config{
		MinConfidence:    0.5,
		CooldownDuration: 15 * time.Minute,
	}
}

// Router routes recommendation events to notifiers with filtering
type Router struct {
	cfg       Config
	registry  *notifier.Registry
	logger    *zap.Logger
	mu        sync.RWMutex
	cooldowns map[string]time.Time // pair -> last notified
}

// New creates a new recommendation router
func New(cfg Config, registry *notifier.Registry, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		cfg:       cfg,
		registry:  registry,
		logger:    logger,
		cooldowns: make(map[string]time.Time),
	}
}

// Route sends an event through the filters to all notifiers. A filtered-out
// event is not an error.
func (r *Router) Route(event notifier.Event) error {
	rec := event.Recommendation

	if !r.passesFilters(event) {
		r.logger.Debug("recommendation filtered out",
			zap.String("pair", rec.Pair()),
			zap.String("action", string(rec.Action)),
			zap.Float64("confidence", rec.Confidence),
		)
		return nil
	}

	r.mu.Lock()
	r.cooldowns[rec.Pair()] = time.Now()
	r.mu.Unlock()

	if r.registry == nil {
		return nil
	}

	errors := r.registry.NotifyAll(event)
	for name, err := range errors {
		r.logger.Error("notifier failed",
			zap.String("notifier", name),
			zap.Error(err),
		)
	}

	r.logger.Info("recommendation routed",
		zap.String("pair", rec.Pair()),
		zap.String("action", string(rec.Action)),
		zap.Float64("confidence", rec.Confidence),
		zap.Int("notifiers", len(r.registry.GetAll())),
		zap.Int("errors", len(errors)),
	)

	return nil
}

// passesFilters checks confidence and per-pair cooldown
func (r *Router) passesFilters(event notifier.Event) bool {
	rec := event.Recommendation

	if rec.Confidence < r.cfg.MinConfidence {
		return false
	}

	r.mu.RLock()
	last, exists := r.cooldowns[rec.Pair()]
	r.mu.RUnlock()

	if exists && time.Since(last) < r.cfg.CooldownDuration {
		return false
	}

	return true
}

// ClearCooldown removes the cooldown for a specific pair
func (r *Router) ClearCooldown(pair string) {
	r.mu.Lock()
	delete(r.cooldowns, pair)
	r.mu.Unlock()
}

// ActiveCooldowns returns the number of pairs currently in cooldown.
func (r *Router) ActiveCooldowns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cooldowns)
}
