package core

import (
	"sort"
	"strings"
	"time"
)

// MinIndicatorPoints is the minimum series length required for indicator computation.
const MinIndicatorPoints = 50

// Quote represents a point-in-time forex quote.
type Quote struct {
	Pair   string // "USD/EUR"
	Bid    float64
	Ask    float64
	Price  float64 // mid price
	Time   time.Time
	Source string
}

// IsValid checks that the quote satisfies ask >= bid >= 0 and carries a pair.
func (q Quote) IsValid() bool {
	return q.Pair != "" && q.Bid >= 0 && q.Ask >= q.Bid && q.Price > 0
}

// Spread returns the bid-ask spread.
func (q Quote) Spread() float64 {
	return q.Ask - q.Bid
}

// SplitPair splits a "FROM/TO" pair label into its two currencies.
// ok is false when the label is not of that form.
func SplitPair(pair string) (from, to string, ok bool) {
	from, to, ok = strings.Cut(pair, "/")
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

// PairLabel builds a "FROM/TO" pair label.
func PairLabel(from, to string) string {
	return from + "/" + to
}

// OHLC represents a single candlestick. Volume is zero for forex.
type OHLC struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Time   time.Time
}

// PriceSeries is an ordered OHLC series, strictly increasing by timestamp.
type PriceSeries []OHLC

// Normalize sorts the series ascending by timestamp and drops duplicate
// timestamps, keeping the first occurrence for each.
func (s PriceSeries) Normalize() PriceSeries {
	if len(s) == 0 {
		return s
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	dedup := out[:1]
	for _, p := range out[1:] {
		if p.Time.After(dedup[len(dedup)-1].Time) {
			dedup = append(dedup, p)
		}
	}
	return dedup
}

// Closes extracts the close prices.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// MACD holds the MACD line, signal line, and histogram.
type MACD struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// Bollinger holds Bollinger Band levels. Invariant: Lower <= Middle <= Upper.
type Bollinger struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// MovingAverages holds the simple and exponential averages used by signals.
type MovingAverages struct {
	SMA20 float64
	SMA50 float64
	EMA12 float64
	EMA26 float64
}

// Stochastic holds the %K/%D oscillator values, each in [0, 100].
type Stochastic struct {
	K float64
	D float64
}

// IndicatorBundle is the fixed set of indicators derived from a PriceSeries.
// It is computed fresh on each call and never mutated in place.
type IndicatorBundle struct {
	RSI            float64
	MACD           MACD
	Bollinger      Bollinger
	MovingAverages MovingAverages
	Stochastic     Stochastic
}

// SignalType classifies a trading signal.
type SignalType string

const (
	SignalStrongBuy  SignalType = "strong_buy"
	SignalBuy        SignalType = "buy"
	SignalHold       SignalType = "hold"
	SignalSell       SignalType = "sell"
	SignalStrongSell SignalType = "strong_sell"
)

// IsBuy reports whether the signal is a buy or strong buy.
func (t SignalType) IsBuy() bool {
	return t == SignalBuy || t == SignalStrongBuy
}

// IsSell reports whether the signal is a sell or strong sell.
func (t SignalType) IsSell() bool {
	return t == SignalSell || t == SignalStrongSell
}

// TradingSignal is a directional signal with confidence and risk metadata.
// StopLoss and TakeProfit are set iff Type is not SignalHold.
type TradingSignal struct {
	Pair       string
	Type       SignalType
	Strength   float64 // [0, 1]
	Confidence float64 // [0, 1]
	EntryPrice float64
	StopLoss   *float64
	TakeProfit *float64
	Reasons    []string
	Time       time.Time
}

// Reasoning joins the contributing factors for display.
func (s TradingSignal) Reasoning() string {
	return strings.Join(s.Reasons, "; ")
}

// RateSnapshot captures the rates of the monitored pairs at one point in time.
type RateSnapshot struct {
	Time         time.Time
	BaseCurrency string
	Rates        map[string]float64 // pair label -> rate
}

// RateChange describes a pair whose rate moved between two snapshots.
type RateChange struct {
	Pair      string
	OldRate   float64
	NewRate   float64
	ChangeAbs float64
	ChangePct float64
	Time      time.Time
}

// Bullish reports whether the rate moved up.
func (c RateChange) Bullish() bool {
	return c.ChangePct > 0
}

// Action is the executable side of a recommendation. Hold-range changes are
// filtered out before a recommendation is produced.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// RiskLevel classifies recommendation risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// TradingRecommendation is an executable trade bounded by portfolio risk limits.
type TradingRecommendation struct {
	Action         Action
	FromCurrency   string
	ToCurrency     string
	Amount         float64
	ExpectedProfit float64
	Confidence     float64
	Risk           RiskLevel
	Reasoning      string
	Time           time.Time
}

// Pair returns the label of the pair the recommendation trades.
func (r TradingRecommendation) Pair() string {
	if r.Action == ActionBuy {
		return PairLabel(r.ToCurrency, r.FromCurrency)
	}
	return PairLabel(r.FromCurrency, r.ToCurrency)
}

// Transaction records an executed currency conversion.
type Transaction struct {
	ID           string
	FromCurrency string
	ToCurrency   string
	AmountFrom   float64
	AmountTo     float64
	Rate         float64
	Time         time.Time
}
