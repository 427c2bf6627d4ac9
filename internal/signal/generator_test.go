package signal

import (
	"testing"

	"github.com/nvoss/fxpulse/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(bid, ask float64) core.Quote {
	return core.Quote{
		Pair:  "EUR/USD",
		Bid:   bid,
		Ask:   ask,
		Price: (bid + ask) / 2,
	}
}

// bullishBundle satisfies every positive scoring condition:
// RSI oversold, MACD bullish, EMA12 > EMA26, price at lower band.
func bullishBundle(price float64) core.IndicatorBundle {
	return core.IndicatorBundle{
		RSI: 25,
		MACD: core.MACD{
			Line:      0.002,
			Signal:    0.001,
			Histogram: 0.001,
		},
		MovingAverages: core.MovingAverages{EMA12: 1.09, EMA26: 1.08},
		Bollinger:      core.Bollinger{Upper: price + 0.01, Middle: price + 0.005, Lower: price},
		Stochastic:     core.Stochastic{K: 20, D: 20},
	}
}

func TestGenerate_StrongBuyComposite(t *testing.T) {
	q := quote(1.0850, 1.0860)
	// Score = 0.30 + 0.25 + 0.20 + 0.15 = 0.90
	sig := Generate(q, bullishBundle(q.Price))

	assert.Equal(t, core.SignalStrongBuy, sig.Type)
	assert.Greater(t, sig.Confidence, 0.8)
	assert.LessOrEqual(t, sig.Confidence, 1.0)
	assert.InDelta(t, 0.90, sig.Strength, 1e-9)

	require.NotNil(t, sig.StopLoss)
	require.NotNil(t, sig.TakeProfit)
	assert.Less(t, *sig.StopLoss, sig.EntryPrice)
	assert.Greater(t, *sig.TakeProfit, sig.EntryPrice)

	// ATR proxy = spread * 10 = 0.01; stop at 2x, target at 3x.
	assert.InDelta(t, q.Price-0.02, *sig.StopLoss, 1e-9)
	assert.InDelta(t, q.Price+0.03, *sig.TakeProfit, 1e-9)

	assert.NotEmpty(t, sig.Reasons)
	assert.Contains(t, sig.Reasoning(), "oversold")
}

func TestGenerate_StrongSellMirrored(t *testing.T) {
	q := quote(1.0850, 1.0860)
	ind := core.IndicatorBundle{
		RSI: 80,
		MACD: core.MACD{
			Line:      -0.002,
			Signal:    -0.001,
			Histogram: -0.001,
		},
		MovingAverages: core.MovingAverages{EMA12: 1.07, EMA26: 1.08},
		Bollinger:      core.Bollinger{Upper: q.Price, Middle: q.Price - 0.005, Lower: q.Price - 0.01},
	}

	sig := Generate(q, ind)

	assert.Equal(t, core.SignalStrongSell, sig.Type)
	require.NotNil(t, sig.StopLoss)
	require.NotNil(t, sig.TakeProfit)
	assert.Greater(t, *sig.StopLoss, sig.EntryPrice)
	assert.Less(t, *sig.TakeProfit, sig.EntryPrice)
}

func TestGenerate_HoldHasNoExitLevels(t *testing.T) {
	q := quote(1.0850, 1.0860)
	// Neutral RSI and MACD; only the EMA cross contributes (+0.20), inside
	// the hold band.
	ind := core.IndicatorBundle{
		RSI:            50,
		MACD:           core.MACD{},
		MovingAverages: core.MovingAverages{EMA12: 1.09, EMA26: 1.08},
		Bollinger:      core.Bollinger{Upper: q.Price + 0.01, Middle: q.Price, Lower: q.Price - 0.01},
	}

	sig := Generate(q, ind)

	assert.Equal(t, core.SignalHold, sig.Type)
	assert.Equal(t, 0.5, sig.Confidence)
	assert.Nil(t, sig.StopLoss)
	assert.Nil(t, sig.TakeProfit)
}

func TestGenerate_BuyBand(t *testing.T) {
	q := quote(1.0850, 1.0860)
	// EMA cross (+0.20) plus Bollinger bounce (+0.15) = 0.35: plain Buy.
	ind := core.IndicatorBundle{
		RSI:            50,
		MovingAverages: core.MovingAverages{EMA12: 1.09, EMA26: 1.08},
		Bollinger:      core.Bollinger{Upper: q.Price + 0.01, Middle: q.Price + 0.005, Lower: q.Price},
	}

	sig := Generate(q, ind)

	assert.Equal(t, core.SignalBuy, sig.Type)
	assert.InDelta(t, 0.6+(0.35-0.3)*0.67, sig.Confidence, 1e-9)
	assert.InDelta(t, 0.35, sig.Strength, 1e-9)
}

func TestGenerate_BoundsAlwaysHold(t *testing.T) {
	q := quote(1.0850, 1.0860)

	bundles := []core.IndicatorBundle{
		bullishBundle(q.Price),
		{RSI: 99, MACD: core.MACD{Line: -1, Signal: 0, Histogram: -1},
			MovingAverages: core.MovingAverages{EMA12: 1, EMA26: 2},
			Bollinger:      core.Bollinger{Upper: q.Price - 0.01, Middle: q.Price - 0.02, Lower: q.Price - 0.03}},
		{},
	}

	for i, ind := range bundles {
		sig := Generate(q, ind)
		assert.GreaterOrEqual(t, sig.Strength, 0.0, "bundle %d", i)
		assert.LessOrEqual(t, sig.Strength, 1.0, "bundle %d", i)
		assert.GreaterOrEqual(t, sig.Confidence, 0.0, "bundle %d", i)
		assert.LessOrEqual(t, sig.Confidence, 1.0, "bundle %d", i)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	q := quote(1.0850, 1.0860)
	ind := bullishBundle(q.Price)

	a := Generate(q, ind)
	b := Generate(q, ind)

	assert.Equal(t, a.Type, b.Type)
	assert.Equal(t, a.Strength, b.Strength)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, a.Reasons, b.Reasons)
}
