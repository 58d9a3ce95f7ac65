package contipay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contipay/contipay-go/contipay/payload"
)

func newTestCard(t *testing.T, p Processor, opts ...Option) *Card {
	t.Helper()
	opts = append([]Option{
		WithMerchantID(202),
		WithWebhookURL("https://merchant.example/hook"),
		WithSuccessURL("https://merchant.example/ok"),
		WithErrorURL("https://merchant.example/fail"),
		WithProcessor(p),
	}, opts...)
	c, err := NewCard("key", "secret", opts...)
	require.NoError(t, err)
	return c
}

func visaFields() Fields {
	return Fields{
		"firstName":     "Tariro",
		"lastName":      "Moyo",
		"email":         "t@example.com",
		"phone":         "0771234567",
		"accountNumber": "4111111111111111",
		"accountExpiry": "12/27",
		"cvv":           "123",
		"amount":        "25",
		"currency":      "USD",
		"reference":     "INV-9",
	}
}

func TestCard_VisaDirect(t *testing.T) {
	p := okProcessor()
	c := newTestCard(t, p)

	_, err := c.Visa(context.Background(), visaFields())
	require.NoError(t, err)

	direct := p.lastPayload().(*payload.DirectPayload)
	assert.Equal(t, "Visa", direct.Transaction.ProviderName)
	assert.Equal(t, "VA", direct.Transaction.ProviderCode)
	assert.Equal(t, "4111111111111111", direct.AccountDetails.AccountNumber)
	assert.Equal(t, "Tariro Moyo", direct.AccountDetails.AccountName)
	assert.Equal(t, "12/27", direct.AccountDetails.AccountExtra.Expiry)
	assert.Equal(t, "123", direct.AccountDetails.AccountExtra.CVV)
	assert.Equal(t, "ZW", direct.Customer.CountryCode)
	assert.Equal(t, "Payment", direct.Transaction.Description)
	assert.Equal(t, 202, direct.Transaction.MerchantID)

	m := payloadMap(direct)
	assert.NotContains(t, m, "successUrl")
	assert.NotContains(t, m, "cancelUrl")
}

func TestCard_ZimSwitchFallsBackToPhone(t *testing.T) {
	p := okProcessor()
	c := newTestCard(t, p)

	_, err := c.ZimSwitch(context.Background(), Fields{
		"amount": "5", "currency": "USD", "phone": "0779999999", "reference": "z1",
	})
	require.NoError(t, err)

	direct := p.lastPayload().(*payload.DirectPayload)
	assert.Equal(t, "0779999999", direct.AccountDetails.AccountNumber)
	assert.Equal(t, "ZimSwitch", direct.Transaction.ProviderName)
	assert.Equal(t, "ZS", direct.Transaction.ProviderCode)
}

func TestCard_ZimSwitchMissingReference(t *testing.T) {
	p := okProcessor()
	c := newTestCard(t, p)

	_, err := c.ZimSwitch(context.Background(), Fields{
		"amount": "5", "currency": "USD", "phone": "0779999999",
	})

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "reference", fieldErr.Field)
	assert.Equal(t, "zimswitch", fieldErr.Provider)
	p.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestCard_MasterCardWithoutReference(t *testing.T) {
	p := okProcessor()
	c := newTestCard(t, p)

	fields := visaFields()
	delete(fields, "reference")

	_, err := c.MasterCard(context.Background(), fields)
	require.NoError(t, err)

	direct := p.lastPayload().(*payload.DirectPayload)
	assert.Equal(t, "MasterCard", direct.Transaction.ProviderName)
	assert.Equal(t, "MA", direct.Transaction.ProviderCode)
	assert.Empty(t, direct.Transaction.Reference)
}

func TestCard_RedirectNeverCarriesCardData(t *testing.T) {
	p := okProcessor()
	c := newTestCard(t, p, WithMethod("hosted"))

	_, err := c.Visa(context.Background(), visaFields())
	require.NoError(t, err)

	redirect, ok := p.lastPayload().(*payload.RedirectPayload)
	require.True(t, ok, "any non-direct method is a redirect")

	m := payloadMap(redirect)
	assert.NotContains(t, m, "accountDetails")
	assert.NotContains(t, m, "accountNumber")
	assert.NotContains(t, m, "cvv")
	assert.NotContains(t, m, "expiry")
	assert.Equal(t, "https://merchant.example/ok", m["successUrl"])
	assert.Equal(t, "Tariro", m["firstName"])
	assert.Equal(t, "USD", m["currencyCode"])
}

func TestCard_GatewayRejectionAgainstRealTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"card declined"}`))
	}))
	defer srv.Close()

	c, err := NewCard("key", "secret",
		WithMerchantID(1),
		WithURLs(srv.URL, srv.URL),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	resp, err := c.Visa(context.Background(), visaFields())
	assert.Nil(t, resp)

	var procErr *ProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, FailureGateway, procErr.Kind)
	assert.Equal(t, http.StatusBadRequest, procErr.StatusCode())

	out, err := c.InvokeJSON(context.Background(), "visa", visaFields())
	require.NoError(t, err)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "card declined")
}

func TestCard_SuccessAgainstRealTransport(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"status":"Success","providerReference":"P1"}`))
	}))
	defer srv.Close()

	c, err := NewCard("key", "secret", WithMerchantID(1), WithURLs(srv.URL, srv.URL))
	require.NoError(t, err)

	out, err := c.InvokeJSON(context.Background(), "visa", visaFields())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Success","providerReference":"P1"}`, out)
	assert.Equal(t, http.MethodPut, gotMethod)
}
