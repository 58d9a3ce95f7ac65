package contipay

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type settings struct {
	cfg        Config
	httpClient *http.Client
	logger     logrus.FieldLogger
	processor  Processor
}

// Option is a function that configures a façade.
type Option func(*settings)

// WithMode sets the environment mode.
func WithMode(mode Mode) Option {
	return func(s *settings) {
		s.cfg.Mode = mode
	}
}

// WithMethod sets the processing method.
func WithMethod(method Method) Option {
	return func(s *settings) {
		s.cfg.Method = method
	}
}

// WithMerchantID sets the ContiPay merchant ID.
func WithMerchantID(id int) Option {
	return func(s *settings) {
		s.cfg.MerchantID = id
	}
}

// WithWebhookURL sets the URL ContiPay notifies when a payment settles.
func WithWebhookURL(url string) Option {
	return func(s *settings) {
		s.cfg.WebhookURL = url
	}
}

// WithSuccessURL sets where the hosted page sends the payer after success.
func WithSuccessURL(url string) Option {
	return func(s *settings) {
		s.cfg.SuccessURL = url
	}
}

// WithErrorURL sets where the hosted page sends the payer after failure.
func WithErrorURL(url string) Option {
	return func(s *settings) {
		s.cfg.ErrorURL = url
	}
}

// WithURLs overrides the sandbox and live base URLs.
func WithURLs(devURL, liveURL string) Option {
	return func(s *settings) {
		s.cfg.DevURL = devURL
		s.cfg.LiveURL = liveURL
	}
}

// WithHTTPClient sets the HTTP client used by the default processor.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		s.httpClient = c
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithProcessor replaces the ContiPay transport.
func WithProcessor(p Processor) Option {
	return func(s *settings) {
		s.processor = p
	}
}
