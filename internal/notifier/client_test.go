package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contipay/contipay-go/internal/domain"
)

func TestClient_ForwardsRawBody(t *testing.T) {
	var (
		gotBody   []byte
		gotSecret string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSecret = r.Header.Get("X-Webhook-Secret")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	raw := json.RawMessage(`{"reference":"ref-1","status":"Paid","extra":true}`)
	err := NewClient(srv.URL, "merchant-key").NotifyPaymentEvent(context.Background(), &domain.WebhookEvent{
		Reference: "ref-1",
		Status:    "Paid",
		Raw:       raw,
	})
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(gotBody))
	assert.Equal(t, "merchant-key", gotSecret)
}

func TestClient_MarshalsEventWithoutRaw(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Empty(t, r.Header.Get("X-Webhook-Secret"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").NotifyPaymentEvent(context.Background(), &domain.WebhookEvent{
		Reference: "ref-2",
		Status:    "Failed",
	})
	require.NoError(t, err)
	assert.Equal(t, "ref-2", got["reference"])
	assert.Equal(t, "Failed", got["status"])
}

func TestClient_MerchantError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").NotifyPaymentEvent(context.Background(), &domain.WebhookEvent{Reference: "r"})

	var payErr *domain.PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "MERCHANT_ERROR", payErr.Code)
	assert.ErrorIs(t, err, domain.ErrMerchantNotifyError)
	assert.Contains(t, payErr.Message, "500")
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, "").NotifyPaymentEvent(context.Background(), &domain.WebhookEvent{Reference: "r"})
	assert.ErrorIs(t, err, domain.ErrMerchantNotifyError)
}
