// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/internal/domain"
	"github.com/contipay/contipay-go/internal/payment"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Handler contains the HTTP handlers for the payment API.
type Handler struct {
	paymentService *payment.Service
	logger         logrus.FieldLogger
}

// NewHandler creates a new API handler with the payment service.
func NewHandler(paymentService *payment.Service, logger logrus.FieldLogger) *Handler {
	return &Handler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// CreateMobilePayment handles POST /api/v1/payments/mobile/:provider
func (h *Handler) CreateMobilePayment(c *gin.Context) {
	h.pay(c, domain.RailMobile)
}

// CreateCardPayment handles POST /api/v1/payments/card/:provider
func (h *Handler) CreateCardPayment(c *gin.Context) {
	h.pay(c, domain.RailCard)
}

// pay binds the field bag, dispatches it and writes the ContiPay body verbatim.
func (h *Handler) pay(c *gin.Context, rail domain.Rail) {
	fields, err := bindFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	order := domain.PaymentOrder{
		Rail:      rail,
		Provider:  c.Param("provider"),
		Fields:    fields,
		RequestID: c.GetString(requestIDKey),
	}

	result, err := h.paymentService.Pay(c.Request.Context(), order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Body)
}

// ListProviders handles GET /api/v1/providers
func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"providers": h.paymentService.Providers(),
	})
}

// HandleWebhook handles POST /webhooks/contipay
// The signature has already been checked by WebhookSecurityMiddleware.
func (h *Handler) HandleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "failed to read body",
			Code:    "INVALID_BODY",
		})
		return
	}

	var event domain.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// ContiPay might send different formats, log and accept
		h.logger.WithError(err).Warn("Webhook parsing error")
		c.JSON(http.StatusOK, gin.H{"status": "received"})
		return
	}
	event.Raw = body

	if err := h.paymentService.HandleWebhook(c.Request.Context(), &event); err != nil {
		h.logger.WithError(err).WithField("reference", event.Reference).Warn("Webhook processing error")
		// Still return 200 to prevent ContiPay from retrying
		c.JSON(http.StatusOK, gin.H{"status": "processed_with_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "contipay-payments",
		"version": Version,
	})
}

// bindFields binds a flat JSON object into a field bag. Numbers keep their
// literal form and null values are dropped.
func bindFields(c *gin.Context) (map[string]string, error) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is required")
		}
		return nil, err
	}

	fields := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			fields[name] = v
		case json.Number:
			fields[name] = v.String()
		case bool:
			fields[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("field %q must be a string, number or boolean", name)
		}
	}
	return fields, nil
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(c *gin.Context, err error) {
	var paymentErr *domain.PaymentError
	if errors.As(err, &paymentErr) {
		statusCode := http.StatusInternalServerError

		switch {
		case errors.Is(paymentErr.Err, domain.ErrUnsupportedRail),
			errors.Is(paymentErr.Err, domain.ErrUnsupportedProvider):
			statusCode = http.StatusNotFound
		case errors.Is(paymentErr.Err, domain.ErrInvalidPaymentOrder):
			statusCode = http.StatusBadRequest
		case errors.Is(paymentErr.Err, domain.ErrDuplicateReference):
			statusCode = http.StatusConflict
		case errors.Is(paymentErr.Err, domain.ErrIdempotencyStoreError):
			statusCode = http.StatusServiceUnavailable
		case errors.Is(paymentErr.Err, domain.ErrPaymentGatewayError):
			// Processing failures use the SDK's error envelope.
			writeEnvelope(c, http.StatusBadGateway, paymentErr.Message)
			return
		}

		c.JSON(statusCode, ErrorResponse{
			Success: false,
			Error:   paymentErr.Message,
			Code:    paymentErr.Code,
		})
		return
	}

	// Generic error
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Error:   "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

func writeEnvelope(c *gin.Context, status int, message string) {
	c.Data(status, "application/json; charset=utf-8", []byte(contipay.Envelope(nil, errors.New(message))))
}
