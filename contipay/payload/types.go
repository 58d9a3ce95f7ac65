package payload

import "encoding/json"

// DirectPayload is sent for server-to-server payments.
type DirectPayload struct {
	Customer       DirectCustomer    `json:"customer"`
	Transaction    DirectTransaction `json:"transaction"`
	AccountDetails AccountDetails    `json:"accountDetails"`
}

// DirectCustomer identifies the payer.
type DirectCustomer struct {
	NationalID  string `json:"nationalId"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	Cell        string `json:"cell"`
	CountryCode string `json:"countryCode"`
}

// DirectTransaction describes the charge and the rail it runs on.
type DirectTransaction struct {
	ProviderCode string      `json:"providerCode"`
	ProviderName string      `json:"providerName"`
	Amount       json.Number `json:"amount"`
	CurrencyCode string      `json:"currencyCode"`
	Description  string      `json:"description"`
	WebhookURL   string      `json:"webhookUrl"`
	MerchantID   int         `json:"merchantId"`
	Reference    string      `json:"reference"`
}

// AccountDetails carries the wallet or card being charged.
type AccountDetails struct {
	AccountNumber string       `json:"accountNumber"`
	AccountName   string       `json:"accountName"`
	AccountExtra  AccountExtra `json:"accountExtra"`
}

// AccountExtra holds card verification data.
type AccountExtra struct {
	SMSNumber string `json:"smsNumber"`
	Expiry    string `json:"expiry"`
	CVV       string `json:"cvv"`
}

// RedirectPayload is sent for hosted-page payments.
type RedirectPayload struct {
	Reference    string      `json:"reference,omitempty"`
	Cell         string      `json:"cell"`
	Description  string      `json:"description,omitempty"`
	SuccessURL   string      `json:"successUrl"`
	CancelURL    string      `json:"cancelUrl"`
	WebhookURL   string      `json:"webhookUrl"`
	MerchantID   int         `json:"merchantId"`
	Email        string      `json:"email,omitempty"`
	Amount       json.Number `json:"amount"`
	CurrencyCode string      `json:"currencyCode"`
	FirstName    string      `json:"firstName,omitempty"`
	LastName     string      `json:"lastName,omitempty"`
	CountryCode  string      `json:"countryCode,omitempty"`
}
