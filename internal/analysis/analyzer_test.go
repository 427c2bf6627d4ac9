package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/collector/staticsrc"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePair(t *testing.T) {
	src := staticsrc.New()
	src.SetRate("EUR", "USD", 1.0855)
	src.SetSeries("EUR", "USD", staticsrc.GenerateSeries(1.0850, 80))

	a := New(src, nil)
	result, err := a.AnalyzePair(context.Background(), "EUR", "USD", collector.IntervalDaily)
	require.NoError(t, err)

	assert.Equal(t, "EUR/USD", result.Quote.Pair)
	assert.GreaterOrEqual(t, result.Indicators.RSI, 0.0)
	assert.LessOrEqual(t, result.Indicators.RSI, 100.0)
	assert.NotEmpty(t, result.Signal.Type)
	assert.GreaterOrEqual(t, result.Signal.Confidence, 0.0)
	assert.LessOrEqual(t, result.Signal.Confidence, 1.0)
}

func TestAnalyzePair_ShortSeriesPropagates(t *testing.T) {
	src := staticsrc.New()
	src.SetRate("EUR", "USD", 1.0855)
	src.SetSeries("EUR", "USD", staticsrc.GenerateSeries(1.0850, 30))

	a := New(src, nil)
	_, err := a.AnalyzePair(context.Background(), "EUR", "USD", collector.IntervalDaily)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestAnalyzePair_QuoteFetchFailure(t *testing.T) {
	src := staticsrc.New()

	a := New(src, nil)
	_, err := a.AnalyzePair(context.Background(), "EUR", "USD", collector.IntervalDaily)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFetchFailed))
}

func TestOverview_MixedResults(t *testing.T) {
	src := staticsrc.New()
	src.SetRate("USD", "EUR", 0.9200)

	a := New(src, nil)
	overview := a.Overview(context.Background(), []string{"USD/EUR", "USD/JPY", "bogus"})

	require.Len(t, overview, 3)

	assert.NoError(t, overview[0].Err)
	require.NotNil(t, overview[0].Quote)
	assert.Equal(t, 0.9200, overview[0].Quote.Price)

	assert.True(t, errors.Is(overview[1].Err, core.ErrFetchFailed))
	assert.Nil(t, overview[1].Quote)

	assert.True(t, errors.Is(overview[2].Err, core.ErrInvalidPair))
}
