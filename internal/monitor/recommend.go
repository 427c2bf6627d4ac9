package monitor

import (
	"fmt"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
)

// Recommendation policy constants. The +-1% action band and the 0.01 trade
// floor define the deterministic recommendation oracle.
const (
	buyDipThresholdPct   = -1.0
	sellRiseThresholdPct = 1.0
	minTradeAmount       = 0.01
	recConfidence        = 0.7
	maxReasoningContext  = 100
)

// Recommend turns detected rate changes into executable trade recommendations
// bounded by the portfolio risk cap. Changes inside the (-1%, +1%) band map to
// an implicit hold and are dropped. A drop buys the fallen currency funded
// from its quote counterpart; a rise sells it to take profit.
//
// Trade amount = min(funding balance, portfolioValue * maxRiskPct/100);
// recommendations below the minimum trade floor are suppressed. Expected
// profit assumes the full move is captured, an optimistic estimate.
func Recommend(changes []core.RateChange, portfolioValue float64, holdings map[string]float64, maxRiskPct float64, sentiment Sentiment) []core.TradingRecommendation {
	maxTradeAmount := portfolioValue * (maxRiskPct / 100.0)

	var recs []core.TradingRecommendation
	for _, change := range changes {
		var action core.Action
		switch {
		case change.ChangePct <= buyDipThresholdPct:
			action = core.ActionBuy
		case change.ChangePct >= sellRiseThresholdPct:
			action = core.ActionSell
		default:
			continue
		}

		base, quote, ok := core.SplitPair(change.Pair)
		if !ok {
			continue
		}

		var from, to string
		if action == core.ActionBuy {
			// Buy the currency that dropped, funded from its counterpart.
			from, to = quote, base
		} else {
			// Sell the currency that rose, taking profit.
			from, to = base, quote
		}

		available, held := holdings[from]
		if !held {
			continue
		}

		amount := available
		if maxTradeAmount < amount {
			amount = maxTradeAmount
		}
		if amount <= minTradeAmount {
			continue
		}

		pct := change.ChangePct
		if pct < 0 {
			pct = -pct
		}

		recs = append(recs, core.TradingRecommendation{
			Action:         action,
			FromCurrency:   from,
			ToCurrency:     to,
			Amount:         amount,
			ExpectedProfit: amount * pct / 100.0,
			Confidence:     recConfidence,
			Risk:           core.RiskMedium,
			Reasoning: fmt.Sprintf("Rate change of %+.2f%% detected. Analysis: %s",
				change.ChangePct, truncate(sentiment.Summary, maxReasoningContext)),
			Time: time.Now().UTC(),
		})
	}

	return recs
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
