package contipaygw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/internal/domain"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := []contipay.Option{
		contipay.WithMerchantID(7),
		contipay.WithURLs(srv.URL, srv.URL),
		contipay.WithHTTPClient(srv.Client()),
	}
	mobile, err := contipay.NewMobile("key", "secret", opts...)
	require.NoError(t, err)
	card, err := contipay.NewCard("key", "secret", opts...)
	require.NoError(t, err)

	return NewAdapter(mobile, card)
}

func TestAdapter_PayMobile(t *testing.T) {
	var got map[string]any
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"Pending"}`))
	})

	res, err := a.Pay(context.Background(), domain.PaymentOrder{
		Rail:     domain.RailMobile,
		Provider: "ecocash",
		Fields:   map[string]string{"amount": "10", "currency": "USD", "phone": "0771", "reference": "r1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "EcoCash", res.Provider)
	assert.Equal(t, "r1", res.Reference)
	assert.JSONEq(t, `{"status":"Pending"}`, string(res.Body))

	txn := got["transaction"].(map[string]any)
	assert.Equal(t, "EC", txn["providerCode"])
}

func TestAdapter_PayCardMissingField(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called")
	})

	_, err := a.Pay(context.Background(), domain.PaymentOrder{
		Rail:     domain.RailCard,
		Provider: "visa",
		Fields:   map[string]string{"amount": "10"},
	})
	assert.ErrorIs(t, err, contipay.ErrMissingField)
}

func TestAdapter_PayUnknownRail(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := a.Pay(context.Background(), domain.PaymentOrder{Rail: "crypto", Provider: "btc"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedRail)
}

func TestAdapter_Providers(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})

	providers := a.Providers()
	require.Len(t, providers, 8)
	assert.Equal(t, domain.RailMobile, providers[0].Rail)
	assert.Equal(t, "ecocash", providers[0].Key)
	assert.Equal(t, domain.RailCard, providers[5].Rail)
	assert.Equal(t, "visa", providers[5].Key)
	assert.Contains(t, providers[5].Required, "cvv")
}
