// Package domain contains the core business entities and interfaces for the payment service.
package domain

import "context"

// PaymentGateway charges providers through ContiPay.
// This is a "port" in hexagonal architecture: the domain defines what it needs,
// and the contipay adapter provides the implementation.
type PaymentGateway interface {
	// Pay dispatches the order to the façade for its rail. Unknown providers,
	// missing fields and processing failures come back as the SDK's typed errors.
	Pay(ctx context.Context, order PaymentOrder) (*PaymentResult, error)

	// Providers lists every provider of every rail.
	Providers() []ProviderInfo
}

// IdempotencyStore guards against charging the same reference twice.
type IdempotencyStore interface {
	// Acquire marks reference as in progress. It returns false when the
	// reference is already in progress or completed.
	Acquire(ctx context.Context, reference string) (bool, error)

	// Release forgets an in-progress reference so it can be retried.
	Release(ctx context.Context, reference string) error

	// Complete marks reference as settled.
	Complete(ctx context.Context, reference string) error
}

// MerchantNotifier forwards settlement events to the merchant backend.
type MerchantNotifier interface {
	NotifyPaymentEvent(ctx context.Context, event *WebhookEvent) error
}
