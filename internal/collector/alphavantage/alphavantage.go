// Package alphavantage implements the collector.Source contract against the
// Alpha Vantage forex API.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nvoss/fxpulse/internal/collector"
	"github.com/nvoss/fxpulse/internal/core"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Config holds client settings. The API key is injected here once at start-up
// instead of being read from the environment on each call.
type Config struct {
	APIKey          string
	BaseURL         string
	Timeout         time.Duration
	RequestsPerMin  int
	MaxRetryElapsed time.Duration
}

// Client is a rate-limited, retrying Alpha Vantage client.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a new Alpha Vantage client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("alphavantage api key"))
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMin == 0 {
		cfg.RequestsPerMin = 5
	}
	if cfg.MaxRetryElapsed == 0 {
		cfg.MaxRetryElapsed = 30 * time.Second
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMin)), 1),
	}, nil
}

func (c *Client) Name() string {
	return "alphavantage"
}

// FetchQuote fetches the current exchange rate for the from/to pair.
func (c *Client) FetchQuote(ctx context.Context, from, to string) (*core.Quote, error) {
	params := url.Values{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {from},
		"to_currency":   {to},
	}

	var payload struct {
		Rate map[string]string `json:"Realtime Currency Exchange Rate"`
	}
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Rate) == 0 {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("no exchange rate data for %s/%s", from, to))
	}

	price, err := parseField(payload.Rate, "5. Exchange Rate")
	if err != nil {
		return nil, err
	}
	// Bid/ask can be absent on some plans; fall back to the mid rate.
	bid, bidErr := parseField(payload.Rate, "8. Bid Price")
	ask, askErr := parseField(payload.Rate, "9. Ask Price")
	if bidErr != nil || askErr != nil {
		bid, ask = price, price
	}

	return &core.Quote{
		Pair:   core.PairLabel(from, to),
		Bid:    bid,
		Ask:    ask,
		Price:  price,
		Time:   time.Now().UTC(),
		Source: c.Name(),
	}, nil
}

// FetchSeries fetches a historical OHLC series, normalized ascending.
func (c *Client) FetchSeries(ctx context.Context, from, to string, interval collector.Interval) (core.PriceSeries, error) {
	params := url.Values{
		"from_symbol": {from},
		"to_symbol":   {to},
		"outputsize":  {"compact"},
	}

	var seriesKey, tsLayout string
	switch interval {
	case collector.IntervalIntraday:
		params.Set("function", "FX_INTRADAY")
		params.Set("interval", "1min")
		seriesKey = "Time Series FX (1min)"
		tsLayout = "2006-01-02 15:04:05"
	case collector.IntervalDaily:
		params.Set("function", "FX_DAILY")
		seriesKey = "Time Series FX (Daily)"
		tsLayout = "2006-01-02"
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unsupported interval %q", interval))
	}

	var payload map[string]json.RawMessage
	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}

	raw, ok := payload[seriesKey]
	if !ok {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("no time series data for %s/%s", from, to))
	}

	var bars map[string]map[string]string
	if err := json.Unmarshal(raw, &bars); err != nil {
		return nil, core.WrapError(core.ErrFetchFailed, fmt.Errorf("decoding time series: %w", err))
	}

	series := make(core.PriceSeries, 0, len(bars))
	for ts, fields := range bars {
		when, err := time.Parse(tsLayout, ts)
		if err != nil {
			return nil, core.WrapError(core.ErrInvalidNumeric,
				fmt.Errorf("timestamp %q: %w", ts, err))
		}

		open, err := parseField(fields, "1. open")
		if err != nil {
			return nil, err
		}
		high, err := parseField(fields, "2. high")
		if err != nil {
			return nil, err
		}
		low, err := parseField(fields, "3. low")
		if err != nil {
			return nil, err
		}
		closePrice, err := parseField(fields, "4. close")
		if err != nil {
			return nil, err
		}

		series = append(series, core.OHLC{
			Open:  open,
			High:  high,
			Low:   low,
			Close: closePrice,
			Time:  when.UTC(),
		})
	}

	if len(series) == 0 {
		return nil, core.WrapError(core.ErrFetchFailed,
			fmt.Errorf("empty time series for %s/%s", from, to))
	}

	return series.Normalize(), nil
}

// get performs a rate-limited GET with exponential-backoff retries and decodes
// the JSON body into out. Vendor error notes are surfaced as fetch failures.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return core.WrapError(core.ErrFetchFailed, err)
	}

	params.Set("apikey", c.cfg.APIKey)
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 &&
				resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.cfg.MaxRetryElapsed
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return core.WrapError(core.ErrFetchFailed, err)
	}

	// Vendor-level errors come back as 200 with a message field.
	var vendorErr struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := json.Unmarshal(body, &vendorErr); err == nil {
		switch {
		case vendorErr.ErrorMessage != "":
			return core.WrapError(core.ErrFetchFailed, fmt.Errorf("%s", vendorErr.ErrorMessage))
		case vendorErr.Note != "":
			return core.WrapError(core.ErrFetchFailed, fmt.Errorf("rate limited: %s", vendorErr.Note))
		case vendorErr.Information != "":
			return core.WrapError(core.ErrFetchFailed, fmt.Errorf("%s", vendorErr.Information))
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return core.WrapError(core.ErrFetchFailed, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func parseField(fields map[string]string, key string) (float64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, core.WrapError(core.ErrFetchFailed, fmt.Errorf("missing field %q", key))
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.WrapError(core.ErrInvalidNumeric, fmt.Errorf("field %q = %q", key, raw))
	}
	return v, nil
}
