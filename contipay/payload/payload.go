// Package payload builds the request bodies accepted by the ContiPay acquire endpoint.
//
// A Builder is created per payment with the merchant ID and webhook URL, then
// filled section by section and closed with one of four terminals:
//
//	Direct          server-to-server payment with customer, provider, account and transaction
//	Redirect        hosted-page payment; never carries account numbers or CVVs
//	SimpleDirect    mobile-money direct payment needing only amount/phone/currency
//	SimpleRedirect  mobile-money hosted-page payment
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultCountry is the country code used when none is supplied.
const DefaultCountry = "ZW"

var (
	// ErrMissingMerchant is returned when the builder has no merchant ID.
	ErrMissingMerchant = errors.New("merchant id is required")

	// ErrMissingSection is returned when a terminal needs a section that was never set.
	ErrMissingSection = errors.New("payload section not set")

	// ErrInvalidAmount is returned when an amount is not a non-negative decimal.
	ErrInvalidAmount = errors.New("invalid amount")
)

var amountPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Builder assembles a single payment payload.
type Builder struct {
	merchantID int
	webhookURL string
	successURL string
	errorURL   string

	customer    *customer
	provider    *provider
	account     *account
	transaction *transaction
}

type customer struct {
	firstName string
	lastName  string
	phone     string
	country   string
	email     string
}

type provider struct {
	name string
	code string
}

type account struct {
	number string
	name   string
	expiry string
	cvv    string
}

type transaction struct {
	amount      string
	currency    string
	reference   string
	description string
}

// Option configures a Builder.
type Option func(*Builder)

// WithRedirectURLs sets the URLs the hosted page returns to.
func WithRedirectURLs(successURL, errorURL string) Option {
	return func(b *Builder) {
		b.successURL = successURL
		b.errorURL = errorURL
	}
}

// New creates a Builder for the given merchant.
func New(merchantID int, webhookURL string, opts ...Option) *Builder {
	b := &Builder{
		merchantID: merchantID,
		webhookURL: webhookURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Customer sets the payer identity. An empty country falls back to DefaultCountry.
func (b *Builder) Customer(firstName, lastName, phone, country, email string) *Builder {
	if country == "" {
		country = DefaultCountry
	}
	b.customer = &customer{
		firstName: firstName,
		lastName:  lastName,
		phone:     phone,
		country:   country,
		email:     email,
	}
	return b
}

// Provider sets the payment rail label.
func (b *Builder) Provider(name, code string) *Builder {
	b.provider = &provider{name: name, code: code}
	return b
}

// AccountDetails sets the card or wallet being charged.
func (b *Builder) AccountDetails(number, name, expiry, cvv string) *Builder {
	b.account = &account{
		number: number,
		name:   name,
		expiry: expiry,
		cvv:    cvv,
	}
	return b
}

// Transaction sets the money movement.
func (b *Builder) Transaction(amount, currency, reference, description string) *Builder {
	b.transaction = &transaction{
		amount:      amount,
		currency:    currency,
		reference:   reference,
		description: description,
	}
	return b
}

// Direct builds a server-to-server payload. Customer, Provider, AccountDetails
// and Transaction must all have been set.
func (b *Builder) Direct() (*DirectPayload, error) {
	if err := b.require("customer", "provider", "account", "transaction"); err != nil {
		return nil, err
	}
	amount, err := parseAmount(b.transaction.amount)
	if err != nil {
		return nil, err
	}

	return &DirectPayload{
		Customer: DirectCustomer{
			FirstName:   b.customer.firstName,
			Surname:     b.customer.lastName,
			Email:       b.customer.email,
			Cell:        b.customer.phone,
			CountryCode: b.customer.country,
		},
		Transaction: b.directTransaction(amount, b.transaction.currency, b.transaction.reference, b.transaction.description),
		AccountDetails: AccountDetails{
			AccountNumber: b.account.number,
			AccountName:   b.account.name,
			AccountExtra: AccountExtra{
				SMSNumber: b.customer.phone,
				Expiry:    b.account.expiry,
				CVV:       b.account.cvv,
			},
		},
	}, nil
}

// Redirect builds a hosted-page payload. Customer and Transaction must have been set.
func (b *Builder) Redirect() (*RedirectPayload, error) {
	if err := b.require("customer", "transaction"); err != nil {
		return nil, err
	}
	amount, err := parseAmount(b.transaction.amount)
	if err != nil {
		return nil, err
	}

	p := b.redirect(amount, b.customer.phone, b.transaction.currency)
	p.Reference = b.transaction.reference
	p.Description = b.transaction.description
	p.Email = b.customer.email
	p.FirstName = b.customer.firstName
	p.LastName = b.customer.lastName
	p.CountryCode = b.customer.country
	return p, nil
}

// SimpleDirect builds a mobile-money direct payload. Provider must have been set.
func (b *Builder) SimpleDirect(amount, phone, currency, reference, description string) (*DirectPayload, error) {
	if err := b.require("provider"); err != nil {
		return nil, err
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	return &DirectPayload{
		Customer: DirectCustomer{
			Cell:        phone,
			CountryCode: DefaultCountry,
		},
		Transaction: b.directTransaction(parsed, currency, reference, description),
		AccountDetails: AccountDetails{
			AccountNumber: phone,
			AccountExtra: AccountExtra{
				SMSNumber: phone,
			},
		},
	}, nil
}

// SimpleRedirect builds a mobile-money hosted-page payload.
func (b *Builder) SimpleRedirect(amount, phone, currency string) (*RedirectPayload, error) {
	if err := b.require(); err != nil {
		return nil, err
	}
	parsed, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	return b.redirect(parsed, phone, currency), nil
}

func (b *Builder) directTransaction(amount json.Number, currency, reference, description string) DirectTransaction {
	return DirectTransaction{
		ProviderCode: b.provider.code,
		ProviderName: b.provider.name,
		Amount:       amount,
		CurrencyCode: currency,
		Description:  description,
		WebhookURL:   b.webhookURL,
		MerchantID:   b.merchantID,
		Reference:    reference,
	}
}

func (b *Builder) redirect(amount json.Number, phone, currency string) *RedirectPayload {
	return &RedirectPayload{
		Cell:         phone,
		SuccessURL:   b.successURL,
		CancelURL:    b.errorURL,
		WebhookURL:   b.webhookURL,
		MerchantID:   b.merchantID,
		Amount:       amount,
		CurrencyCode: currency,
	}
}

// require checks the merchant ID and the named sections.
func (b *Builder) require(sections ...string) error {
	if b.merchantID <= 0 {
		return ErrMissingMerchant
	}
	for _, s := range sections {
		var set bool
		switch s {
		case "customer":
			set = b.customer != nil
		case "provider":
			set = b.provider != nil
		case "account":
			set = b.account != nil
		case "transaction":
			set = b.transaction != nil
		}
		if !set {
			return fmt.Errorf("%w: %s", ErrMissingSection, s)
		}
	}
	return nil
}

func parseAmount(amount string) (json.Number, error) {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	// JSON numbers cannot carry leading zeros.
	if trimmed := strings.TrimLeft(amount, "0"); trimmed != amount {
		if trimmed == "" || trimmed[0] == '.' {
			trimmed = "0" + trimmed
		}
		amount = trimmed
	}
	return json.Number(amount), nil
}
