package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		APIKey:          "test-key",
		BaseURL:         srv.URL,
		Timeout:         2 * time.Second,
		RequestsPerMin:  6000,
		MaxRetryElapsed: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfigMissing))
}

func TestFetchQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CURRENCY_EXCHANGE_RATE", r.URL.Query().Get("function"))
		assert.Equal(t, "USD", r.URL.Query().Get("from_currency"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		fmt.Fprint(w, `{
			"Realtime Currency Exchange Rate": {
				"5. Exchange Rate": "0.9200",
				"8. Bid Price": "0.9195",
				"9. Ask Price": "0.9205"
			}
		}`)
	})

	quote, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.NoError(t, err)

	assert.Equal(t, "USD/EUR", quote.Pair)
	assert.Equal(t, 0.9200, quote.Price)
	assert.Equal(t, 0.9195, quote.Bid)
	assert.Equal(t, 0.9205, quote.Ask)
	assert.True(t, quote.IsValid())
}

func TestFetchQuote_MissingBidAskFallsBackToMid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "0.9200"}}`)
	})

	quote, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, quote.Price, quote.Bid)
	assert.Equal(t, quote.Price, quote.Ask)
}

func TestFetchQuote_MalformedRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "n/a"}}`)
	})

	_, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidNumeric))
}

func TestFetchQuote_VendorRateLimitNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Please slow down."}`)
	})

	_, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFetchFailed))
}

func TestFetchSeries_Daily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "FX_DAILY", r.URL.Query().Get("function"))

		// Served newest first, as the vendor does.
		fmt.Fprint(w, `{
			"Time Series FX (Daily)": {
				"2025-06-03": {"1. open": "1.0860", "2. high": "1.0880", "3. low": "1.0840", "4. close": "1.0870"},
				"2025-06-02": {"1. open": "1.0850", "2. high": "1.0870", "3. low": "1.0830", "4. close": "1.0860"},
				"2025-06-01": {"1. open": "1.0840", "2. high": "1.0860", "3. low": "1.0820", "4. close": "1.0850"}
			}
		}`)
	})

	series, err := client.FetchSeries(context.Background(), "EUR", "USD", collector.IntervalDaily)
	require.NoError(t, err)
	require.Len(t, series, 3)

	// Normalized ascending
	assert.Equal(t, 1.0850, series[0].Close)
	assert.Equal(t, 1.0870, series[2].Close)
	assert.True(t, series[0].Time.Before(series[1].Time))
}

func TestFetchSeries_UnsupportedInterval(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.FetchSeries(context.Background(), "EUR", "USD", collector.Interval("5min"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfigInvalid))
}

func TestFetchSeries_MissingSeriesKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Meta Data": {}}`)
	})

	_, err := client.FetchSeries(context.Background(), "EUR", "USD", collector.IntervalDaily)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFetchFailed))
}

func TestGet_RetriesTransientErrors(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"Realtime Currency Exchange Rate": {"5. Exchange Rate": "0.9200"}}`)
	})

	_, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestGet_BadRequestIsPermanent(t *testing.T) {
	attempts := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.FetchQuote(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx must not be retried")
}

func TestClientImplementsSource(t *testing.T) {
	var _ collector.Source = (*Client)(nil)
}
