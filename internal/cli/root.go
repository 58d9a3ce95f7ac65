// Package cli implements the contipay command line tool.
package cli

import (
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/contipay/core"
	"github.com/contipay/contipay-go/internal/logger"
)

// globalOptions are shared by every subcommand. Unset flags fall back to the
// CONTIPAY_* environment variables.
type globalOptions struct {
	apiKey     string
	apiSecret  string
	mode       string
	method     string
	merchantID int
	webhookURL string
	successURL string
	errorURL   string
	devURL     string
	liveURL    string
	timeout    time.Duration
	verbose    bool
}

// NewRootCommand builds the contipay command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "contipay",
		Short:        "ContiPay payments from the terminal",
		Long:         `Fire single mobile-money or card payments at ContiPay and inspect the supported providers.`,
		SilenceUsage: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.apiKey, "key", os.Getenv("CONTIPAY_API_KEY"), "ContiPay API key")
	f.StringVar(&opts.apiSecret, "secret", os.Getenv("CONTIPAY_API_SECRET"), "ContiPay API secret")
	f.StringVar(&opts.mode, "mode", envOr("CONTIPAY_MODE", string(contipay.ModeDev)), "Environment (dev, live)")
	f.StringVar(&opts.method, "method", envOr("CONTIPAY_METHOD", string(contipay.MethodDirect)), "Processing method (direct, redirect)")
	f.IntVar(&opts.merchantID, "merchant-id", envInt("CONTIPAY_MERCHANT_ID"), "ContiPay merchant ID")
	f.StringVar(&opts.webhookURL, "webhook-url", os.Getenv("CONTIPAY_WEBHOOK_URL"), "URL ContiPay notifies on settlement")
	f.StringVar(&opts.successURL, "success-url", os.Getenv("CONTIPAY_SUCCESS_URL"), "Hosted page success URL")
	f.StringVar(&opts.errorURL, "error-url", os.Getenv("CONTIPAY_ERROR_URL"), "Hosted page error URL")
	f.StringVar(&opts.devURL, "dev-url", envOr("CONTIPAY_DEV_URL", core.DefaultDevURL), "Sandbox base URL")
	f.StringVar(&opts.liveURL, "live-url", envOr("CONTIPAY_LIVE_URL", core.DefaultLiveURL), "Live base URL")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP timeout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr")

	cmd.AddCommand(
		newPayCommand(opts),
		newProvidersCommand(),
	)

	return cmd
}

// facadeOptions turns the global flags into façade options.
func (o *globalOptions) facadeOptions(stderr io.Writer) ([]contipay.Option, error) {
	var log logrus.FieldLogger = logger.Discard()
	if o.verbose {
		l, err := logger.New(logger.Config{Level: "debug", Format: "text", Output: "stderr"})
		if err != nil {
			return nil, err
		}
		l.SetOutput(stderr)
		log = l
	}

	return []contipay.Option{
		contipay.WithMode(contipay.Mode(o.mode)),
		contipay.WithMethod(contipay.Method(o.method)),
		contipay.WithMerchantID(o.merchantID),
		contipay.WithWebhookURL(o.webhookURL),
		contipay.WithSuccessURL(o.successURL),
		contipay.WithErrorURL(o.errorURL),
		contipay.WithURLs(o.devURL, o.liveURL),
		contipay.WithHTTPClient(&http.Client{Timeout: o.timeout}),
		contipay.WithLogger(log),
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}
