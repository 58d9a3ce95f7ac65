// ContiPay Payments Service
//
// This is the main entry point for the payment processing service.
// It wires up all dependencies and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/contipay/contipay-go/config"
	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/contipay/core"
	"github.com/contipay/contipay-go/internal/adapters/contipaygw"
	"github.com/contipay/contipay-go/internal/api"
	"github.com/contipay/contipay-go/internal/domain"
	"github.com/contipay/contipay-go/internal/idempotency"
	"github.com/contipay/contipay-go/internal/logger"
	"github.com/contipay/contipay-go/internal/notifier"
	"github.com/contipay/contipay-go/internal/payment"
	"github.com/contipay/contipay-go/internal/webhook"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
		Caller: cfg.Log.Caller,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Service stopped")
	}
}

// run wires the service and blocks until a shutdown signal or a server
// failure. Deferred cleanup runs on every return path.
func run(cfg *config.Config, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{
		"port":   cfg.Server.Port,
		"mode":   cfg.ContiPay.Mode,
		"method": cfg.ContiPay.Method,
	}).Info("Starting ContiPay Payments Service")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.Security.ServiceAPIKey == "" {
		log.Warn("SERVICE_API_KEY not set, /api/v1 is unauthenticated")
	}
	if cfg.Security.WebhookSecret == "" {
		log.Warn("CONTIPAY_WEBHOOK_SECRET not set, webhook signatures are not checked")
	}

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure Layer
	// Both façades share one transport so they share one circuit breaker.
	processor := contipay.NewCoreProcessor(core.New(
		cfg.ContiPay.APIKey,
		cfg.ContiPay.APISecret,
		core.WithTimeout(cfg.ContiPay.Timeout),
		core.WithLogger(log),
	))
	opts := []contipay.Option{
		contipay.WithMode(contipay.Mode(cfg.ContiPay.Mode)),
		contipay.WithMethod(contipay.Method(cfg.ContiPay.Method)),
		contipay.WithMerchantID(cfg.ContiPay.MerchantID),
		contipay.WithWebhookURL(cfg.ContiPay.WebhookURL),
		contipay.WithSuccessURL(cfg.ContiPay.SuccessURL),
		contipay.WithErrorURL(cfg.ContiPay.ErrorURL),
		contipay.WithURLs(cfg.ContiPay.DevURL, cfg.ContiPay.LiveURL),
		contipay.WithLogger(log),
		contipay.WithProcessor(processor),
	}
	mobile, err := contipay.NewMobile(cfg.ContiPay.APIKey, cfg.ContiPay.APISecret, opts...)
	if err != nil {
		return fmt.Errorf("configure mobile façade: %w", err)
	}
	card, err := contipay.NewCard(cfg.ContiPay.APIKey, cfg.ContiPay.APISecret, opts...)
	if err != nil {
		return fmt.Errorf("configure card façade: %w", err)
	}

	var store domain.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client := idempotency.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable at startup")
		}
		store = idempotency.NewRedisStore(client)
	} else {
		log.Warn("REDIS_ADDR not set, duplicate references are not detected")
	}

	var merchant domain.MerchantNotifier
	if cfg.Merchant.CallbackURL != "" {
		merchant = notifier.NewClient(cfg.Merchant.CallbackURL, cfg.Merchant.APIKey)
	}

	// Service Layer
	paymentService := payment.NewService(
		contipaygw.NewAdapter(mobile, card), // implements domain.PaymentGateway
		store,                               // implements domain.IdempotencyStore
		merchant,                            // implements domain.MerchantNotifier
		log,
	)

	// API Layer
	handler := api.NewHandler(paymentService, log)
	router := api.SetupRouter(handler, api.RouterConfig{
		GinMode:       cfg.Server.GinMode,
		ServiceAPIKey: cfg.Security.ServiceAPIKey,
		Validator:     webhook.NewValidator(cfg.Security.WebhookSecret),
		Logger:        log,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	return nil
}
