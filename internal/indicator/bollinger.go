package indicator

import "math"

// StdDev returns the population standard deviation of the last period prices
// around the given mean. Returns 0 when fewer than period prices are available.
func StdDev(prices []float64, period int, mean float64) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	var variance float64
	for _, p := range prices[len(prices)-period:] {
		d := p - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(period))
}

// BollingerBands returns upper, middle, and lower band levels over the trailing
// period: middle = trailing mean, bands = middle ± mult·σ (population σ).
// A flat window collapses all three bands onto the mean.
func BollingerBands(prices []float64, period int, mult float64) (upper, middle, lower float64) {
	middle = TrailingMean(prices, period)
	sigma := StdDev(prices, period, middle)
	return middle + mult*sigma, middle, middle - mult*sigma
}
