// Package domain contains the core business entities and interfaces for the payment service.
// It has no dependencies on HTTP frameworks or storage drivers.
package domain

import (
	"encoding/json"
	"strings"
)

// Rail identifies which façade handles a payment.
type Rail string

const (
	RailMobile Rail = "mobile"
	RailCard   Rail = "card"
)

// Valid reports whether r is a known rail.
func (r Rail) Valid() bool {
	return r == RailMobile || r == RailCard
}

// PaymentOrder represents a request to charge a provider on a rail.
type PaymentOrder struct {
	Rail      Rail              `json:"rail"`
	Provider  string            `json:"provider"`   // Registry key, e.g. "ecocash"
	Fields    map[string]string `json:"fields"`     // Field bag handed to the façade
	RequestID string            `json:"request_id"` // Correlates logs with the HTTP request
}

// Reference returns the merchant reference of the order, if any.
func (o PaymentOrder) Reference() string {
	return strings.TrimSpace(o.Fields["reference"])
}

// PaymentResult is a gateway answer for an order.
type PaymentResult struct {
	Provider  string          `json:"provider"`
	Reference string          `json:"reference"`
	Body      json.RawMessage `json:"body"` // ContiPay response, untouched
}

// ProviderInfo describes a provider the service can charge.
type ProviderInfo struct {
	Rail        Rail     `json:"rail"`
	Key         string   `json:"key"`
	DisplayName string   `json:"display_name,omitempty"`
	ShortCode   string   `json:"short_code,omitempty"`
	Required    []string `json:"required"`
}

// WebhookEvent represents a settlement notification from ContiPay.
type WebhookEvent struct {
	Reference         string          `json:"reference"`
	Status            string          `json:"status"`
	ProviderReference string          `json:"providerReference,omitempty"`
	Amount            json.RawMessage `json:"amount,omitempty"`
	CurrencyCode      string          `json:"currencyCode,omitempty"`
	Raw               json.RawMessage `json:"-"` // Body as received, forwarded verbatim
}

// failedStatuses are webhook statuses after which no money moved.
var failedStatuses = map[string]bool{
	"failed":    true,
	"failure":   true,
	"declined":  true,
	"cancelled": true,
	"canceled":  true,
	"error":     true,
	"expired":   true,
}

// Failed reports whether the event settles the payment without a charge.
// Unknown statuses count as not failed.
func (e *WebhookEvent) Failed() bool {
	return failedStatuses[strings.ToLower(strings.TrimSpace(e.Status))]
}
