package contipay

import "strings"

// Field names recognised in a Fields bag.
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldAccountNumber = "accountNumber"
	FieldPhone         = "phone"
	FieldEmail         = "email"
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldAccountExpiry = "accountExpiry"
	FieldCVV           = "cvv"
	FieldCountry       = "country"
	FieldReference     = "reference"
	FieldDescription   = "description"
	FieldProvider      = "provider"
	FieldCode          = "code"
)

// Defaults applied when a field is absent from the bag.
const (
	DefaultAmount      = "0"
	DefaultCurrency    = "USD"
	DefaultCountry     = "ZW"
	DefaultDescription = "Payment"
)

// Fields is the per-call bag of payment inputs keyed by field name.
type Fields map[string]string

// Present reports whether name is set to something other than blank space.
// "0" is present.
func (f Fields) Present(name string) bool {
	v, ok := f[name]
	return ok && strings.TrimSpace(v) != ""
}

// Get returns the value for name, or def when the key is absent.
func (f Fields) Get(name, def string) string {
	if v, ok := f[name]; ok {
		return v
	}
	return def
}

// request is the normalised tuple every façade call reduces to.
type request struct {
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

func normalize(p Provider, f Fields) request {
	r := request{
		FirstName:     f.Get(FieldFirstName, ""),
		LastName:      f.Get(FieldLastName, ""),
		AccountNumber: f.Get(FieldAccountNumber, ""),
		Phone:         f.Get(FieldPhone, ""),
		Email:         f.Get(FieldEmail, ""),
		Amount:        f.Get(FieldAmount, DefaultAmount),
		Currency:      f.Get(FieldCurrency, DefaultCurrency),
		AccountExpiry: f.Get(FieldAccountExpiry, ""),
		CVV:           f.Get(FieldCVV, ""),
		Country:       f.Get(FieldCountry, DefaultCountry),
		Reference:     f.Get(FieldReference, ""),
		Description:   f.Get(FieldDescription, DefaultDescription),
		ProviderName:  p.DisplayName,
		ProviderCode:  p.ShortCode,
	}
	if p.CallerLabelled {
		r.ProviderName = f.Get(FieldProvider, "")
		r.ProviderCode = f.Get(FieldCode, "")
	}
	return r
}
