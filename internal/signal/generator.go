// Package signal converts indicator bundles into directional trading signals.
package signal

import (
	"math"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
)

// Scoring weights and thresholds. These constants define the deterministic
// signal oracle; changing any of them changes reproducible signal output.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	weightRSI       = 0.30
	weightMACD      = 0.25
	weightEMACross  = 0.20
	weightBollinger = 0.15

	strongThreshold = 0.6
	weakThreshold   = 0.3

	// ATR proxy derived from the bid-ask spread; stops are sized at 2x and
	// targets at 3x for a fixed 2:3 reward:risk skew.
	atrSpreadMult  = 10.0
	stopLossMult   = 2.0
	takeProfitMult = 3.0
)

// Generate produces a trading signal from a quote and its indicator bundle.
// Pure and deterministic: the same inputs always yield the same signal apart
// from the timestamp.
func Generate(quote core.Quote, ind core.IndicatorBundle) core.TradingSignal {
	var score float64
	var reasons []string

	if ind.RSI < rsiOversold {
		score += weightRSI
		reasons = append(reasons, "RSI indicates oversold condition (bullish)")
	} else if ind.RSI > rsiOverbought {
		score -= weightRSI
		reasons = append(reasons, "RSI indicates overbought condition (bearish)")
	}

	if ind.MACD.Line > ind.MACD.Signal && ind.MACD.Histogram > 0 {
		score += weightMACD
		reasons = append(reasons, "MACD bullish crossover")
	} else if ind.MACD.Line < ind.MACD.Signal && ind.MACD.Histogram < 0 {
		score -= weightMACD
		reasons = append(reasons, "MACD bearish crossover")
	}

	if ind.MovingAverages.EMA12 > ind.MovingAverages.EMA26 {
		score += weightEMACross
		reasons = append(reasons, "short-term EMA above long-term EMA (bullish trend)")
	} else {
		score -= weightEMACross
		reasons = append(reasons, "short-term EMA below long-term EMA (bearish trend)")
	}

	if quote.Price <= ind.Bollinger.Lower {
		score += weightBollinger
		reasons = append(reasons, "price at lower Bollinger band (potential bounce)")
	} else if quote.Price >= ind.Bollinger.Upper {
		score -= weightBollinger
		reasons = append(reasons, "price at upper Bollinger band (potential reversal)")
	}

	sigType, confidence := classify(score)

	sig := core.TradingSignal{
		Pair:       quote.Pair,
		Type:       sigType,
		Strength:   math.Min(math.Abs(score), 1.0),
		Confidence: math.Min(confidence, 1.0),
		EntryPrice: quote.Price,
		Reasons:    reasons,
		Time:       time.Now().UTC(),
	}

	atr := quote.Spread() * atrSpreadMult
	switch {
	case sigType.IsBuy():
		sig.StopLoss = ptr(quote.Price - stopLossMult*atr)
		sig.TakeProfit = ptr(quote.Price + takeProfitMult*atr)
	case sigType.IsSell():
		sig.StopLoss = ptr(quote.Price + stopLossMult*atr)
		sig.TakeProfit = ptr(quote.Price - takeProfitMult*atr)
	}

	return sig
}

// classify maps a score in [-1, 1] to a signal type and its confidence.
func classify(score float64) (core.SignalType, float64) {
	switch {
	case score > strongThreshold:
		return core.SignalStrongBuy, 0.8 + (score-strongThreshold)*0.5
	case score > weakThreshold:
		return core.SignalBuy, 0.6 + (score-weakThreshold)*0.67
	case score < -strongThreshold:
		return core.SignalStrongSell, 0.8 + (math.Abs(score)-strongThreshold)*0.5
	case score < -weakThreshold:
		return core.SignalSell, 0.6 + (math.Abs(score)-weakThreshold)*0.67
	default:
		return core.SignalHold, 0.5
	}
}

func ptr(v float64) *float64 {
	return &v
}
