package contipay

import (
	"context"

	"github.com/contipay/contipay-go/contipay/payload"
)

// Mobile charges mobile-money wallets: EcoCash, OneMoney, Omari, InnBucks and
// a caller-labelled "mobile" rail.
type Mobile struct {
	facade
}

// MobileRequest is the full parameter set of a mobile-money payment.
type MobileRequest struct {
	Amount       string
	Currency     string
	Phone        string
	Reference    string
	Description  string
	ProviderName string
	ProviderCode string
}

// NewMobile creates a Mobile façade. Mode defaults to dev and method to direct.
func NewMobile(apiKey, apiSecret string, opts ...Option) (*Mobile, error) {
	s := settings{cfg: defaultConfig(apiKey, apiSecret)}
	for _, opt := range opts {
		opt(&s)
	}
	return newMobile(s)
}

func newMobile(s settings) (*Mobile, error) {
	f, err := newFacade(NewRegistry(mobileProviders()...), s)
	if err != nil {
		return nil, err
	}
	return &Mobile{facade: f}, nil
}

// With returns a copy of m with opts applied. m is left unchanged.
func (m *Mobile) With(opts ...Option) (*Mobile, error) {
	return newMobile(m.apply(opts))
}

// Invoke validates fields against the provider registered under key and
// processes the payment.
func (m *Mobile) Invoke(ctx context.Context, key string, fields Fields) (*Response, error) {
	p, err := m.registry.Resolve(key, fields)
	if err != nil {
		return nil, err
	}
	m.logger.WithField("provider", key).Debug("dispatching mobile payment")

	r := normalize(p, fields)
	return m.ProcessPayment(ctx, MobileRequest{
		Amount:       r.Amount,
		Currency:     r.Currency,
		Phone:        r.Phone,
		Reference:    r.Reference,
		Description:  r.Description,
		ProviderName: r.ProviderName,
		ProviderCode: r.ProviderCode,
	})
}

// InvokeJSON is Invoke rendered as a JSON string. The error is non-nil only
// for an unsupported provider or a missing field.
func (m *Mobile) InvokeJSON(ctx context.Context, key string, fields Fields) (string, error) {
	return envelopeJSON(m.Invoke(ctx, key, fields))
}

// EcoCash charges an EcoCash wallet.
func (m *Mobile) EcoCash(ctx context.Context, fields Fields) (*Response, error) {
	return m.Invoke(ctx, ProviderEcoCash, fields)
}

// OneMoney charges a OneMoney wallet.
func (m *Mobile) OneMoney(ctx context.Context, fields Fields) (*Response, error) {
	return m.Invoke(ctx, ProviderOneMoney, fields)
}

// Omari charges an Omari wallet.
func (m *Mobile) Omari(ctx context.Context, fields Fields) (*Response, error) {
	return m.Invoke(ctx, ProviderOmari, fields)
}

// InnBucks charges an InnBucks wallet.
func (m *Mobile) InnBucks(ctx context.Context, fields Fields) (*Response, error) {
	return m.Invoke(ctx, ProviderInnBucks, fields)
}

// Generic charges a rail named by the "provider" and "code" fields.
func (m *Mobile) Generic(ctx context.Context, fields Fields) (*Response, error) {
	return m.Invoke(ctx, ProviderMobile, fields)
}

// ProcessPayment sends req without consulting the registry.
func (m *Mobile) ProcessPayment(ctx context.Context, req MobileRequest) (*Response, error) {
	cfg := m.settings.cfg
	return m.process(ctx, req.ProviderName, req.Reference, func() (any, error) {
		if cfg.Method.IsDirect() {
			return wrap(payload.New(cfg.MerchantID, cfg.WebhookURL).
				Provider(req.ProviderName, req.ProviderCode).
				SimpleDirect(req.Amount, req.Phone, req.Currency, req.Reference, req.Description))
		}
		return wrap(payload.New(cfg.MerchantID, cfg.WebhookURL, payload.WithRedirectURLs(cfg.SuccessURL, cfg.ErrorURL)).
			SimpleRedirect(req.Amount, req.Phone, req.Currency))
	})
}

// ProcessPaymentJSON is ProcessPayment rendered as a JSON string.
func (m *Mobile) ProcessPaymentJSON(ctx context.Context, req MobileRequest) string {
	return Envelope(m.ProcessPayment(ctx, req))
}

// wrap keeps a typed nil payload from becoming a non-nil interface.
func wrap[T any](p *T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}
