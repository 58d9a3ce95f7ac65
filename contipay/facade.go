package contipay

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/contipay/contipay-go/contipay/core"
)

// facade holds what Mobile and Card share: configuration, registry and transport.
type facade struct {
	settings  settings
	registry  *Registry
	processor Processor
	logger    logrus.FieldLogger
}

func newFacade(registry *Registry, s settings) (facade, error) {
	if err := s.cfg.Validate(); err != nil {
		return facade{}, err
	}

	logger := s.logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	processor := s.processor
	if processor == nil {
		processor = NewCoreProcessor(core.New(
			s.cfg.APIKey,
			s.cfg.APISecret,
			core.WithHTTPClient(s.httpClient),
			core.WithLogger(logger),
		))
	}

	return facade{
		settings:  s,
		registry:  registry,
		processor: processor,
		logger:    logger,
	}, nil
}

func (f *facade) apply(opts []Option) settings {
	s := f.settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Config returns a copy of the façade configuration.
func (f *facade) Config() Config { return f.settings.cfg }

// Mode returns the environment mode.
func (f *facade) Mode() Mode { return f.settings.cfg.Mode }

// Method returns the processing method.
func (f *facade) Method() Method { return f.settings.cfg.Method }

// MerchantID returns the merchant ID.
func (f *facade) MerchantID() int { return f.settings.cfg.MerchantID }

// WebhookURL returns the webhook URL.
func (f *facade) WebhookURL() string { return f.settings.cfg.WebhookURL }

// SuccessURL returns the hosted-page success URL.
func (f *facade) SuccessURL() string { return f.settings.cfg.SuccessURL }

// ErrorURL returns the hosted-page error URL.
func (f *facade) ErrorURL() string { return f.settings.cfg.ErrorURL }

// DevURL returns the sandbox base URL.
func (f *facade) DevURL() string { return f.settings.cfg.DevURL }

// LiveURL returns the live base URL.
func (f *facade) LiveURL() string { return f.settings.cfg.LiveURL }

// Providers lists the providers this façade supports.
func (f *facade) Providers() []Provider { return f.registry.Providers() }

// Lookup returns the descriptor for key.
func (f *facade) Lookup(key string) (Provider, bool) { return f.registry.Lookup(key) }

// process builds a payload and sends it. Every failure comes back as a
// *ProcessingError.
func (f *facade) process(ctx context.Context, providerName, reference string, build func() (any, error)) (*Response, error) {
	cfg := f.settings.cfg
	log := f.logger.WithFields(logrus.Fields{
		"provider":  providerName,
		"reference": reference,
		"method":    cfg.Method,
		"mode":      cfg.Mode,
	})

	body, err := build()
	if err != nil {
		log.WithError(err).Warn("failed to build payment payload")
		return nil, &ProcessingError{Kind: FailurePayload, Err: err}
	}

	target := Target{
		Mode:    cfg.Mode,
		Method:  cfg.Method,
		DevURL:  cfg.DevURL,
		LiveURL: cfg.LiveURL,
	}
	raw, err := f.processor.Process(ctx, target, body)
	if err != nil {
		kind := classify(err)
		log.WithError(err).WithField("kind", kind).Warn("payment processing failed")
		return nil, &ProcessingError{Kind: kind, Err: err}
	}

	log.Debug("payment processed")
	return &Response{
		Provider:  providerName,
		Reference: reference,
		Body:      raw,
	}, nil
}

func envelopeJSON(resp *Response, err error) (string, error) {
	if IsInvocationError(err) {
		return "", err
	}
	return Envelope(resp, err), nil
}
