package notifier

import (
	"github.com/nvoss/fxpulse/internal/core"
)

// Event is what notifiers deliver: a recommendation, optionally paired with
// the transaction that executed it.
type Event struct {
	Recommendation core.TradingRecommendation
	Transaction    *core.Transaction
}

// Notifier defines the interface for recommendation notification
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Send delivers a single event
	Send(event Event) error
}
