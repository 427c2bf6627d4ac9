// Package indicator derives technical indicators from OHLC price series.
// All functions are pure and safe for concurrent use.
package indicator

import (
	"fmt"

	"github.com/nvoss/fxpulse/internal/core"
)

// Standard lookback periods.
const (
	rsiPeriod       = 14
	stochPeriod     = 14
	bollingerPeriod = 20
	bollingerMult   = 2.0
	fastEMAPeriod   = 12
	slowEMAPeriod   = 26
	shortSMAPeriod  = 20
	longSMAPeriod   = 50
)

// Compute derives the full indicator bundle from a price series. The series
// must contain at least core.MinIndicatorPoints bars, otherwise
// core.ErrInsufficientData is returned; there is no partial result.
//
// Known approximations, kept deliberately because downstream signal scoring
// depends on them:
//   - EMA12/EMA26 are seeded with the first close and folded over the whole
//     series rather than warmed up with an SMA.
//   - MACD signal line equals the MACD line (histogram 0), not an EMA of MACD.
//   - Stochastic %D equals %K, not a 3-period SMA of %K.
func Compute(series core.PriceSeries) (*core.IndicatorBundle, error) {
	if len(series) < core.MinIndicatorPoints {
		return nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("need at least %d points, got %d", core.MinIndicatorPoints, len(series)))
	}

	closes := series.Closes()

	sma20 := TrailingMean(closes, shortSMAPeriod)
	sma50 := TrailingMean(closes, longSMAPeriod)
	ema12 := SeededEMA(closes, fastEMAPeriod)
	ema26 := SeededEMA(closes, slowEMAPeriod)

	macdLine := ema12 - ema26
	signalLine := macdLine
	histogram := macdLine - signalLine

	upper, middle, lower := BollingerBands(closes, bollingerPeriod, bollingerMult)

	k := StochasticK(series, stochPeriod)

	return &core.IndicatorBundle{
		RSI: RSI(closes, rsiPeriod),
		MACD: core.MACD{
			Line:      macdLine,
			Signal:    signalLine,
			Histogram: histogram,
		},
		Bollinger: core.Bollinger{
			Upper:  upper,
			Middle: middle,
			Lower:  lower,
		},
		MovingAverages: core.MovingAverages{
			SMA20: sma20,
			SMA50: sma50,
			EMA12: ema12,
			EMA26: ema26,
		},
		Stochastic: core.Stochastic{
			K: k,
			D: k,
		},
	}, nil
}
