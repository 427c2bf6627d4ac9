package monitor

import (
	"sort"

	"github.com/nvoss/fxpulse/internal/core"
)

// Diff compares two snapshots and returns the pairs whose absolute percentage
// change meets thresholdPct. Pairs missing from either snapshot are silently
// skipped: a failed fetch for one pair must not abort the cycle. Results are
// sorted by pair label for deterministic output.
func Diff(old, new core.RateSnapshot, thresholdPct float64) []core.RateChange {
	var changes []core.RateChange

	for pair, newRate := range new.Rates {
		oldRate, ok := old.Rates[pair]
		if !ok || oldRate == 0 {
			continue
		}

		abs := newRate - oldRate
		pct := abs / oldRate * 100.0

		if pct >= thresholdPct || -pct >= thresholdPct {
			changes = append(changes, core.RateChange{
				Pair:      pair,
				OldRate:   oldRate,
				NewRate:   newRate,
				ChangeAbs: abs,
				ChangePct: pct,
				Time:      new.Time,
			})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Pair < changes[j].Pair
	})
	return changes
}
