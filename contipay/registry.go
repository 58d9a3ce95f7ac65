package contipay

// Provider describes one payment rail a façade can charge.
type Provider struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	ShortCode   string   `json:"shortCode"`
	Required    []string `json:"required"`

	// CallerLabelled providers take their display name and short code from
	// the "provider" and "code" fields of each call.
	CallerLabelled bool `json:"callerLabelled,omitempty"`
}

// Mobile provider keys.
const (
	ProviderEcoCash  = "ecocash"
	ProviderOneMoney = "onemoney"
	ProviderOmari    = "omari"
	ProviderInnBucks = "innbucks"
	ProviderMobile   = "mobile"
)

// Card provider keys.
const (
	ProviderVisa       = "visa"
	ProviderMasterCard = "mastercard"
	ProviderZimSwitch  = "zimswitch"
)

var mobileFields = []string{FieldAmount, FieldCurrency, FieldPhone, FieldReference}

func mobileProviders() []Provider {
	return []Provider{
		{Key: ProviderEcoCash, DisplayName: "EcoCash", ShortCode: "EC", Required: mobileFields},
		{Key: ProviderOneMoney, DisplayName: "OneMoney", ShortCode: "OM", Required: mobileFields},
		{Key: ProviderOmari, DisplayName: "Omari", ShortCode: "OC", Required: mobileFields},
		{Key: ProviderInnBucks, DisplayName: "InnBucks", ShortCode: "IB", Required: mobileFields},
		{
			Key:            ProviderMobile,
			Required:       append(append([]string{}, mobileFields...), FieldProvider, FieldCode),
			CallerLabelled: true,
		},
	}
}

func cardProviders() []Provider {
	return []Provider{
		{
			Key:         ProviderVisa,
			DisplayName: "Visa",
			ShortCode:   "VA",
			Required:    []string{FieldAmount, FieldCurrency, FieldPhone, FieldAccountNumber, FieldAccountExpiry, FieldCVV, FieldReference},
		},
		{
			Key:         ProviderMasterCard,
			DisplayName: "MasterCard",
			ShortCode:   "MA",
			Required:    []string{FieldAmount, FieldCurrency, FieldPhone, FieldAccountNumber, FieldAccountExpiry, FieldCVV},
		},
		{
			Key:         ProviderZimSwitch,
			DisplayName: "ZimSwitch",
			ShortCode:   "ZS",
			Required:    []string{FieldAmount, FieldCurrency, FieldPhone, FieldReference},
		},
	}
}

// Registry is a fixed catalogue of providers keyed by case-sensitive key.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry builds a registry from the given descriptors. Later duplicates
// replace earlier ones.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, exists := r.providers[p.Key]; !exists {
			r.order = append(r.order, p.Key)
		}
		r.providers[p.Key] = p
	}
	return r
}

// Lookup returns the descriptor registered under key.
func (r *Registry) Lookup(key string) (Provider, bool) {
	p, ok := r.providers[key]
	if !ok {
		return Provider{}, false
	}
	return p.clone(), true
}

// Providers returns every descriptor in registration order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.providers[key].clone())
	}
	return out
}

// Resolve looks up key and checks fields against its required list.
func (r *Registry) Resolve(key string, fields Fields) (Provider, error) {
	p, ok := r.Lookup(key)
	if !ok {
		return Provider{}, &ProviderError{Provider: key}
	}
	for _, name := range p.Required {
		if !fields.Present(name) {
			return Provider{}, &FieldError{Provider: key, Field: name}
		}
	}
	return p, nil
}

func (p Provider) clone() Provider {
	p.Required = append([]string(nil), p.Required...)
	return p
}

// MobileProviders returns the mobile-money catalogue used by Mobile.
func MobileProviders() []Provider {
	return NewRegistry(mobileProviders()...).Providers()
}

// CardProviders returns the card catalogue used by Card.
func CardProviders() []Provider {
	return NewRegistry(cardProviders()...).Providers()
}
