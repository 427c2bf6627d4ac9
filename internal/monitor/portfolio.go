package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
)

// Portfolio holds simulated currency balances. Balances never go negative: an
// execution whose funding balance is insufficient is rejected, not clamped.
//
// The monitoring loop is the sole mutator; the mutex exists so summary readers
// can observe a consistent view while the loop runs.
type Portfolio struct {
	mu                sync.RWMutex
	holdings          map[string]float64
	initialInvestment float64
	initialCurrency   string
	createdAt         time.Time
	lastUpdated       time.Time
	totalTransactions int
}

// NewPortfolio creates a portfolio holding the initial investment in the
// initial currency.
func NewPortfolio(initialAmount float64, initialCurrency string) *Portfolio {
	now := time.Now().UTC()
	return &Portfolio{
		holdings:          map[string]float64{initialCurrency: initialAmount},
		initialInvestment: initialAmount,
		initialCurrency:   initialCurrency,
		createdAt:         now,
		lastUpdated:       now,
	}
}

// Holdings returns a copy of the current balances.
func (p *Portfolio) Holdings() map[string]float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]float64, len(p.holdings))
	for c, v := range p.holdings {
		out[c] = v
	}
	return out
}

// Balance returns the balance held in a currency, zero when absent.
func (p *Portfolio) Balance(currency string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.holdings[currency]
}

// TotalTransactions returns the executed transaction count.
func (p *Portfolio) TotalTransactions() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalTransactions
}

// InitialCurrency returns the currency the portfolio was funded in.
func (p *Portfolio) InitialCurrency() string {
	return p.initialCurrency
}

// Execute applies a recommendation at the quoted rate, debiting the source
// currency and crediting the destination. It fails with
// core.ErrInsufficientBalance when the funding balance does not cover the
// amount; balances and the transaction counter are left untouched on failure.
func (p *Portfolio) Execute(rec core.TradingRecommendation, quote core.Quote) (*core.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	available := p.holdings[rec.FromCurrency]
	if available < rec.Amount {
		return nil, core.WrapError(core.ErrInsufficientBalance,
			fmt.Errorf("%s balance %.4f below trade amount %.4f",
				rec.FromCurrency, available, rec.Amount))
	}

	amountTo := rec.Amount * quote.Price

	p.holdings[rec.FromCurrency] = available - rec.Amount
	p.holdings[rec.ToCurrency] += amountTo
	p.totalTransactions++
	p.lastUpdated = time.Now().UTC()

	return &core.Transaction{
		ID:           uuid.NewString(),
		FromCurrency: rec.FromCurrency,
		ToCurrency:   rec.ToCurrency,
		AmountFrom:   rec.Amount,
		AmountTo:     amountTo,
		Rate:         quote.Price,
		Time:         p.lastUpdated,
	}, nil
}

// TotalValue converts every holding into the initial currency via fresh quotes
// from src. A failed conversion falls back to counting the raw amount as if it
// were already in the base currency, a documented approximation.
func (p *Portfolio) TotalValue(ctx context.Context, src collector.Source) float64 {
	holdings := p.Holdings()

	var total float64
	for currency, amount := range holdings {
		if currency == p.initialCurrency {
			total += amount
			continue
		}
		quote, err := src.FetchQuote(ctx, currency, p.initialCurrency)
		if err != nil {
			total += amount
			continue
		}
		total += amount * quote.Price
	}
	return total
}

// Summary is a read-only view of portfolio state and performance.
type Summary struct {
	Holdings          map[string]float64
	InitialInvestment float64
	InitialCurrency   string
	TotalValue        float64
	ProfitLoss        float64
	ProfitLossPct     float64
	TotalTransactions int
	CreatedAt         time.Time
	LastUpdated       time.Time
}

// Summarize values the portfolio and reports cumulative profit/loss.
func (p *Portfolio) Summarize(ctx context.Context, src collector.Source) Summary {
	total := p.TotalValue(ctx, src)

	p.mu.RLock()
	defer p.mu.RUnlock()

	pl := total - p.initialInvestment
	plPct := 0.0
	if p.initialInvestment > 0 {
		plPct = pl / p.initialInvestment * 100.0
	}

	holdings := make(map[string]float64, len(p.holdings))
	for c, v := range p.holdings {
		holdings[c] = v
	}

	return Summary{
		Holdings:          holdings,
		InitialInvestment: p.initialInvestment,
		InitialCurrency:   p.initialCurrency,
		TotalValue:        total,
		ProfitLoss:        pl,
		ProfitLossPct:     plPct,
		TotalTransactions: p.totalTransactions,
		CreatedAt:         p.createdAt,
		LastUpdated:       p.lastUpdated,
	}
}
