// Package webhook implements an HTTP webhook notifier
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
	"github.com/nvoss/fxpulse/internal/notifier"
)

// Webhook implements the Notifier interface for HTTP webhooks
type Webhook struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// New creates a new Webhook notifier
func New(url string, headers map[string]string) *Webhook {
	return &Webhook{
		url:     url,
		headers: headers,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Send(event notifier.Event) error {
	rec := event.Recommendation

	payload := map[string]any{
		"type":            "recommendation",
		"action":          rec.Action,
		"from_currency":   rec.FromCurrency,
		"to_currency":     rec.ToCurrency,
		"amount":          rec.Amount,
		"expected_profit": rec.ExpectedProfit,
		"confidence":      rec.Confidence,
		"risk_level":      rec.Risk,
		"reasoning":       rec.Reasoning,
		"timestamp":       rec.Time.Format(time.RFC3339),
	}
	if tx := event.Transaction; tx != nil {
		payload["type"] = "transaction"
		payload["transaction"] = map[string]any{
			"id":          tx.ID,
			"amount_from": tx.AmountFrom,
			"amount_to":   tx.AmountTo,
			"rate":        tx.Rate,
		}
	}

	return w.post(payload)
}

func (w *Webhook) post(payload map[string]any) error {
	if w.url == "" {
		return core.WrapError(core.ErrNotifierFailed, fmt.Errorf("webhook url not configured"))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return core.WrapError(core.ErrNotifierFailed, fmt.Errorf("marshaling payload: %w", err))
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return core.WrapError(core.ErrNotifierFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrNotifierFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return core.WrapError(core.ErrNotifierFailed,
			fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}

	return nil
}
