// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/contipay/contipay-go/internal/webhook"
)

// RouterConfig holds what the router needs besides the handler.
type RouterConfig struct {
	GinMode       string // "debug", "release", or "test"
	ServiceAPIKey string // Bearer token for /api/v1; empty disables auth
	Validator     *webhook.Validator
	Logger        logrus.FieldLogger
}

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	// Amounts are forwarded as typed, e.g. "12.50" rather than 12.5.
	binding.EnableDecoderUseNumber = true

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	if cfg.Logger != nil {
		router.Use(LoggerMiddleware(cfg.Logger))
	}

	// Health check endpoint (no auth required)
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(ServiceAuthMiddleware(cfg.ServiceAPIKey))
	{
		v1.GET("/providers", handler.ListProviders)

		payments := v1.Group("/payments")
		{
			payments.POST("/mobile/:provider", handler.CreateMobilePayment)
			payments.POST("/card/:provider", handler.CreateCardPayment)
		}
	}

	// Called by ContiPay, so no Bearer token. Security is handled by
	// validating the webhook signature.
	router.POST("/webhooks/contipay", WebhookSecurityMiddleware(cfg.Validator), handler.HandleWebhook)

	return router
}
