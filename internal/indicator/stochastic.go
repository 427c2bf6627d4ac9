package indicator

import "github.com/nvoss/fxpulse/internal/core"

// StochasticK computes the %K oscillator over the trailing period bars:
// (last close − lowest low) / (highest high − lowest low) × 100.
//
// When every bar in the window has the same high and low the range is zero and
// %K is undefined; the neutral 50 is returned instead of dividing by zero.
func StochasticK(series core.PriceSeries, period int) float64 {
	if period <= 0 || len(series) == 0 {
		return 50.0
	}
	window := series
	if len(window) > period {
		window = window[len(window)-period:]
	}

	highest := window[0].High
	lowest := window[0].Low
	for _, bar := range window[1:] {
		if bar.High > highest {
			highest = bar.High
		}
		if bar.Low < lowest {
			lowest = bar.Low
		}
	}

	if highest == lowest {
		return 50.0
	}

	lastClose := window[len(window)-1].Close
	return (lastClose - lowest) / (highest - lowest) * 100.0
}
