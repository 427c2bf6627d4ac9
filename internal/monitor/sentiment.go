package monitor

import (
	"fmt"
	"strings"

	"github.com/nvoss/fxpulse/internal/core"
)

// Sentiment is a coarse market summary derived by tallying change directions.
type Sentiment struct {
	Bullish int
	Bearish int
	Summary string
}

// Summarize tallies bullish against bearish changes. A pure count, no model.
func Summarize(changes []core.RateChange) Sentiment {
	var s Sentiment
	for _, c := range changes {
		if c.Bullish() {
			s.Bullish++
		} else {
			s.Bearish++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d significant changes detected. ", len(changes))
	switch {
	case s.Bullish > s.Bearish:
		b.WriteString("Overall bullish sentiment with more currencies strengthening.")
	case s.Bearish > s.Bullish:
		b.WriteString("Overall bearish sentiment with more currencies weakening.")
	default:
		b.WriteString("Mixed market sentiment with balanced movements.")
	}

	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s: %.4f -> %.4f (%+.2f%%)",
			c.Pair, c.OldRate, c.NewRate, c.ChangePct))
	}
	if len(parts) > 0 {
		b.WriteString(" Changes: ")
		b.WriteString(strings.Join(parts, ", "))
	}

	s.Summary = b.String()
	return s
}
