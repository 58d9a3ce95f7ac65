// Package notifier provides the HTTP client that forwards ContiPay settlement
// events to the merchant backend.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/contipay/contipay-go/internal/domain"
)

// Client implements domain.MerchantNotifier.
type Client struct {
	callbackURL string
	apiKey      string
	httpClient  *http.Client
}

// NewClient creates a new merchant callback client.
func NewClient(callbackURL, apiKey string) *Client {
	return &Client{
		callbackURL: callbackURL,
		apiKey:      apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NotifyPaymentEvent posts the event to the merchant callback URL. The body
// ContiPay sent is forwarded untouched when available.
func (c *Client) NotifyPaymentEvent(ctx context.Context, event *domain.WebhookEvent) error {
	body := []byte(event.Raw)
	if len(body) == 0 {
		var err error
		body, err = json.Marshal(event)
		if err != nil {
			return domain.NewPaymentError(domain.ErrMerchantNotifyError,
				"failed to marshal event", "MARSHAL_ERROR")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.callbackURL, bytes.NewReader(body))
	if err != nil {
		return domain.NewPaymentError(domain.ErrMerchantNotifyError,
			"failed to create request", "REQUEST_ERROR")
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Webhook-Secret", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewPaymentError(domain.ErrMerchantNotifyError,
			"request failed: "+err.Error(), "HTTP_ERROR")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.NewPaymentError(domain.ErrMerchantNotifyError,
			fmt.Sprintf("merchant returned status %d: %s", resp.StatusCode, string(respBody)),
			"MERCHANT_ERROR")
	}

	return nil
}
