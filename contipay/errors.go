package contipay

import (
	"errors"
	"fmt"

	"github.com/contipay/contipay-go/contipay/core"
	"github.com/contipay/contipay-go/contipay/payload"
)

var (
	// ErrUnsupportedProvider is returned when a key has no registry entry.
	ErrUnsupportedProvider = errors.New("provider not supported")

	// ErrMissingField is returned when a required field is absent or blank.
	ErrMissingField = errors.New("missing required field")

	// ErrProcessing is returned when building the payload or calling the gateway fails.
	ErrProcessing = errors.New("payment processing failed")
)

// ProviderError names a key that has no registry entry.
type ProviderError struct {
	Provider string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider '%s' not supported", e.Provider)
}

// Unwrap allows errors.Is(err, ErrUnsupportedProvider).
func (e *ProviderError) Unwrap() error {
	return ErrUnsupportedProvider
}

// FieldError names a required field missing for a provider.
type FieldError struct {
	Provider string
	Field    string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("missing required field: %s for provider '%s'", e.Field, e.Provider)
}

// Unwrap allows errors.Is(err, ErrMissingField).
func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// FailureKind classifies a processing failure.
type FailureKind string

const (
	FailurePayload     FailureKind = "payload"
	FailureTransport   FailureKind = "transport"
	FailureGateway     FailureKind = "gateway"
	FailureDecode      FailureKind = "decode"
	FailureCircuitOpen FailureKind = "circuit_open"
)

// ProcessingError wraps a failure raised while building or sending a payment.
type ProcessingError struct {
	Kind FailureKind
	Err  error
}

// Error returns the underlying failure description.
func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return ErrProcessing.Error()
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying failure.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Is matches ErrProcessing.
func (e *ProcessingError) Is(target error) bool {
	return target == ErrProcessing
}

// StatusCode returns the gateway HTTP status for gateway failures, or 0.
func (e *ProcessingError) StatusCode() int {
	var statusErr *core.StatusError
	if errors.As(e.Err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// IsInvocationError reports whether err is a caller mistake (unknown provider
// or missing field) rather than a processing failure.
func IsInvocationError(err error) bool {
	return errors.Is(err, ErrUnsupportedProvider) || errors.Is(err, ErrMissingField)
}

func classify(err error) FailureKind {
	var statusErr *core.StatusError
	switch {
	case errors.Is(err, core.ErrCircuitOpen):
		return FailureCircuitOpen
	case errors.As(err, &statusErr):
		return FailureGateway
	case errors.Is(err, core.ErrInvalidResponse):
		return FailureDecode
	case errors.Is(err, core.ErrEncode),
		errors.Is(err, payload.ErrInvalidAmount),
		errors.Is(err, payload.ErrMissingMerchant),
		errors.Is(err, payload.ErrMissingSection):
		return FailurePayload
	default:
		return FailureTransport
	}
}
