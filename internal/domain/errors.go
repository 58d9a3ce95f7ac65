// Package domain contains the core business entities and interfaces for the payment service.
package domain

import "errors"

// Domain errors represent business rule violations.
var (
	// ErrUnsupportedRail is returned when a payment names neither the mobile nor the card rail.
	ErrUnsupportedRail = errors.New("unsupported payment rail")

	// ErrUnsupportedProvider is returned when the provider key has no registry entry.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidPaymentOrder is returned when the payment order data is invalid.
	ErrInvalidPaymentOrder = errors.New("invalid payment order data")

	// ErrDuplicateReference is returned when a reference is already in flight or settled.
	ErrDuplicateReference = errors.New("duplicate payment reference")

	// ErrPaymentGatewayError is returned when ContiPay could not process the payment.
	ErrPaymentGatewayError = errors.New("payment gateway error")

	// ErrWebhookValidationFailed is returned when webhook signature validation fails.
	ErrWebhookValidationFailed = errors.New("webhook validation failed")

	// ErrMerchantNotifyError is returned when the merchant callback fails.
	ErrMerchantNotifyError = errors.New("error notifying merchant backend")

	// ErrIdempotencyStoreError is returned when the reference guard is unreachable.
	ErrIdempotencyStoreError = errors.New("idempotency store unavailable")
)

// PaymentError wraps a domain error with additional context.
type PaymentError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with PaymentError.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given error and message.
func NewPaymentError(err error, message, code string) *PaymentError {
	return &PaymentError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
