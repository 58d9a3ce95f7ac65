// Package payment implements the core business logic for payment processing.
// This is the service/use-case layer in Clean Architecture.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/internal/domain"
)

// Service implements the payment business logic.
// It orchestrates between the idempotency store (to guard references),
// the payment gateway (to charge through ContiPay) and the merchant notifier.
// The store and the notifier are optional.
type Service struct {
	gateway  domain.PaymentGateway
	store    domain.IdempotencyStore
	notifier domain.MerchantNotifier
	logger   logrus.FieldLogger
}

// NewService creates a new payment service with the required dependencies.
func NewService(
	gateway domain.PaymentGateway,
	store domain.IdempotencyStore,
	notifier domain.MerchantNotifier,
	logger logrus.FieldLogger,
) *Service {
	return &Service{
		gateway:  gateway,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Providers lists every provider the service can charge.
func (s *Service) Providers() []domain.ProviderInfo {
	return s.gateway.Providers()
}

// Pay handles the payment flow:
// 1. Validates the rail
// 2. Claims the reference so concurrent retries cannot double charge
// 3. Dispatches the order through the gateway
// 4. Releases the reference when the gateway surely did not take the payment
func (s *Service) Pay(ctx context.Context, order domain.PaymentOrder) (*domain.PaymentResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"request_id": order.RequestID,
		"rail":       order.Rail,
		"provider":   order.Provider,
		"reference":  order.Reference(),
	})

	if !order.Rail.Valid() {
		return nil, domain.NewPaymentError(domain.ErrUnsupportedRail,
			fmt.Sprintf("rail '%s' not supported", order.Rail),
			"UNSUPPORTED_RAIL")
	}

	reference := order.Reference()
	claimed := false
	if s.store != nil && reference != "" {
		acquired, err := s.store.Acquire(ctx, reference)
		if err != nil {
			log.WithError(err).Error("Failed to claim payment reference")
			return nil, domain.NewPaymentError(domain.ErrIdempotencyStoreError,
				"failed to claim payment reference",
				"IDEMPOTENCY_ERROR")
		}
		if !acquired {
			log.Warn("Duplicate payment reference")
			return nil, domain.NewPaymentError(domain.ErrDuplicateReference,
				fmt.Sprintf("reference '%s' is already in progress or completed", reference),
				"DUPLICATE_REFERENCE")
		}
		claimed = true
	}

	result, err := s.gateway.Pay(ctx, order)
	if err != nil {
		if claimed && !outcomeUnknown(err) {
			if relErr := s.store.Release(ctx, reference); relErr != nil {
				log.WithError(relErr).Warn("Failed to release payment reference")
			}
		}
		return nil, mapGatewayError(order, err)
	}

	log.Info("Payment dispatched")
	return result, nil
}

// HandleWebhook settles the event's reference and forwards the event to the
// merchant backend. A failed payment frees its reference for a retry; any
// other status keeps it claimed as completed.
func (s *Service) HandleWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	log := s.logger.WithFields(logrus.Fields{
		"reference": event.Reference,
		"status":    event.Status,
	})

	if s.store != nil && event.Reference != "" {
		if event.Failed() {
			if err := s.store.Release(ctx, event.Reference); err != nil {
				log.WithError(err).Warn("Failed to release payment reference")
			}
		} else if err := s.store.Complete(ctx, event.Reference); err != nil {
			log.WithError(err).Warn("Failed to mark payment reference completed")
		}
	}

	if s.notifier == nil {
		log.Info("Webhook processed")
		return nil
	}

	if err := s.notifier.NotifyPaymentEvent(ctx, event); err != nil {
		log.WithError(err).Error("Failed to notify merchant about payment")
		return domain.NewPaymentError(domain.ErrMerchantNotifyError,
			"failed to notify merchant about payment",
			"WEBHOOK_NOTIFY_ERROR")
	}

	log.Info("Webhook processed and forwarded")
	return nil
}

// outcomeUnknown reports whether the request may have reached ContiPay
// without a usable answer coming back.
func outcomeUnknown(err error) bool {
	var procErr *contipay.ProcessingError
	if !errors.As(err, &procErr) {
		return false
	}
	return procErr.Kind == contipay.FailureTransport || procErr.Kind == contipay.FailureDecode
}

// mapGatewayError translates SDK errors into domain errors.
func mapGatewayError(order domain.PaymentOrder, err error) error {
	var (
		provErr  *contipay.ProviderError
		fieldErr *contipay.FieldError
		procErr  *contipay.ProcessingError
	)
	switch {
	case errors.As(err, &provErr):
		return domain.NewPaymentError(domain.ErrUnsupportedProvider,
			provErr.Error(),
			"UNSUPPORTED_PROVIDER")
	case errors.As(err, &fieldErr):
		return domain.NewPaymentError(domain.ErrInvalidPaymentOrder,
			fieldErr.Error(),
			"MISSING_FIELD")
	case errors.As(err, &procErr):
		return domain.NewPaymentError(domain.ErrPaymentGatewayError,
			procErr.Error(),
			"GATEWAY_"+strings.ToUpper(string(procErr.Kind)))
	case errors.Is(err, domain.ErrUnsupportedRail):
		return domain.NewPaymentError(domain.ErrUnsupportedRail,
			fmt.Sprintf("rail '%s' not supported", order.Rail),
			"UNSUPPORTED_RAIL")
	default:
		return domain.NewPaymentError(domain.ErrPaymentGatewayError,
			err.Error(),
			"GATEWAY_ERROR")
	}
}
