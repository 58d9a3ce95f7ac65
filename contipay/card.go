package contipay

import (
	"context"
	"strings"

	"github.com/contipay/contipay-go/contipay/payload"
)

// Card charges cards and bank rails: Visa, MasterCard and ZimSwitch.
type Card struct {
	facade
}

// CardRequest is the full parameter set of a card payment.
type CardRequest struct {
	FirstName     string
	LastName      string
	AccountNumber string
	Phone         string
	Email         string
	Amount        string
	Currency      string
	AccountExpiry string
	CVV           string
	Country       string
	Reference     string
	Description   string
	ProviderName  string
	ProviderCode  string
}

// NewCard creates a Card façade. Mode defaults to dev and method to direct.
func NewCard(apiKey, apiSecret string, opts ...Option) (*Card, error) {
	s := settings{cfg: defaultConfig(apiKey, apiSecret)}
	for _, opt := range opts {
		opt(&s)
	}
	return newCard(s)
}

func newCard(s settings) (*Card, error) {
	f, err := newFacade(NewRegistry(cardProviders()...), s)
	if err != nil {
		return nil, err
	}
	return &Card{facade: f}, nil
}

// With returns a copy of c with opts applied. c is left unchanged.
func (c *Card) With(opts ...Option) (*Card, error) {
	return newCard(c.apply(opts))
}

// Invoke validates fields against the provider registered under key and
// processes the payment.
func (c *Card) Invoke(ctx context.Context, key string, fields Fields) (*Response, error) {
	p, err := c.registry.Resolve(key, fields)
	if err != nil {
		return nil, err
	}
	c.logger.WithField("provider", key).Debug("dispatching card payment")

	r := normalize(p, fields)
	return c.ProcessPayment(ctx, CardRequest(r))
}

// InvokeJSON is Invoke rendered as a JSON string. The error is non-nil only
// for an unsupported provider or a missing field.
func (c *Card) InvokeJSON(ctx context.Context, key string, fields Fields) (string, error) {
	return envelopeJSON(c.Invoke(ctx, key, fields))
}

// Visa charges a Visa card.
func (c *Card) Visa(ctx context.Context, fields Fields) (*Response, error) {
	return c.Invoke(ctx, ProviderVisa, fields)
}

// MasterCard charges a MasterCard.
func (c *Card) MasterCard(ctx context.Context, fields Fields) (*Response, error) {
	return c.Invoke(ctx, ProviderMasterCard, fields)
}

// ZimSwitch charges a ZimSwitch card.
func (c *Card) ZimSwitch(ctx context.Context, fields Fields) (*Response, error) {
	return c.Invoke(ctx, ProviderZimSwitch, fields)
}

// ProcessPayment sends req without consulting the registry. Direct payments
// fall back to the phone number when no account number is given.
func (c *Card) ProcessPayment(ctx context.Context, req CardRequest) (*Response, error) {
	cfg := c.settings.cfg
	return c.process(ctx, req.ProviderName, req.Reference, func() (any, error) {
		if cfg.Method.IsDirect() {
			accountNumber := req.AccountNumber
			if accountNumber == "" {
				accountNumber = req.Phone
			}
			accountName := strings.TrimSpace(req.FirstName + " " + req.LastName)

			return wrap(payload.New(cfg.MerchantID, cfg.WebhookURL).
				Customer(req.FirstName, req.LastName, req.Phone, req.Country, req.Email).
				Provider(req.ProviderName, req.ProviderCode).
				AccountDetails(accountNumber, accountName, req.AccountExpiry, req.CVV).
				Transaction(req.Amount, req.Currency, req.Reference, req.Description).
				Direct())
		}
		return wrap(payload.New(cfg.MerchantID, cfg.WebhookURL, payload.WithRedirectURLs(cfg.SuccessURL, cfg.ErrorURL)).
			Customer(req.FirstName, req.LastName, req.Phone, req.Country, req.Email).
			Transaction(req.Amount, req.Currency, "", "").
			Redirect())
	})
}

// ProcessPaymentJSON is ProcessPayment rendered as a JSON string.
func (c *Card) ProcessPaymentJSON(ctx context.Context, req CardRequest) string {
	return Envelope(c.ProcessPayment(ctx, req))
}
