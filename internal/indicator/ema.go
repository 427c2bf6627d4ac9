package indicator

// EMA calculates Exponential Moving Average
// Returns slice of length: len(prices) - period + 1
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)
	multiplier := 2.0 / float64(period+1)

	// Start with SMA as first EMA value
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)
	result = append(result, ema)

	for i := period; i < len(prices); i++ {
		ema = (prices[i]-ema)*multiplier + ema
		result = append(result, ema)
	}

	return result
}

// SeededEMA folds exponential smoothing over the whole series, seeded with the
// first price rather than an SMA warm-up. The seed biases early values toward
// the series start; with 50+ points the bias is negligible by the final value,
// which is the only one surfaced here.
func SeededEMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	alpha := 2.0 / float64(period+1)
	ema := prices[0]
	for _, p := range prices[1:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return ema
}
