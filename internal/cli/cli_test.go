package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func gateway(t *testing.T, status int, body string) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var m map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		got = append(got, m)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestPayMobile(t *testing.T) {
	srv, got := gateway(t, http.StatusOK, `{"status":"Success"}`)

	out, err := run(t, "pay", "mobile", "ecocash",
		"--key", "k", "--secret", "s", "--merchant-id", "5",
		"--dev-url", srv.URL,
		"--amount", "10", "--phone", "0771234567", "--reference", "cli-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Success"}`, out)

	require.Len(t, *got, 1)
	txn := (*got)[0]["transaction"].(map[string]any)
	assert.Equal(t, "EcoCash", txn["providerName"])
	assert.Equal(t, "cli-1", txn["reference"])
	assert.Equal(t, "USD", txn["currencyCode"])
}

func TestPayMobile_GeneratesReference(t *testing.T) {
	srv, got := gateway(t, http.StatusOK, `{"status":"Success"}`)

	_, err := run(t, "pay", "mobile", "omari",
		"--key", "k", "--secret", "s", "--merchant-id", "5",
		"--dev-url", srv.URL, "--amount", "1", "--phone", "077")
	require.NoError(t, err)

	txn := (*got)[0]["transaction"].(map[string]any)
	assert.Len(t, txn["reference"], 36)
}

func TestPayCard_HelpShowsNoFixedReference(t *testing.T) {
	out, err := run(t, "pay", "card", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "a new UUID")
	assert.NotRegexp(t, `[0-9a-f]{8}-[0-9a-f]{4}-`, out)
}

func TestPayMobile_UnsupportedProviderFails(t *testing.T) {
	_, err := run(t, "pay", "mobile", "mpesa", "--key", "k", "--secret", "s", "--merchant-id", "5")
	assert.ErrorContains(t, err, "provider 'mpesa' not supported")
}

func TestPayCard_MissingFieldFails(t *testing.T) {
	_, err := run(t, "pay", "card", "visa",
		"--key", "k", "--secret", "s", "--merchant-id", "5",
		"--amount", "10", "--phone", "077")
	assert.ErrorContains(t, err, "missing required field: accountNumber for provider 'visa'")
}

func TestPayCard_GatewayFailurePrintsEnvelope(t *testing.T) {
	srv, _ := gateway(t, http.StatusBadRequest, `{"message":"declined"}`)

	out, err := run(t, "pay", "card", "zimswitch",
		"--key", "k", "--secret", "s", "--merchant-id", "5",
		"--dev-url", srv.URL, "--amount", "3", "--phone", "077")
	require.NoError(t, err)

	var env map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "error", env["status"])
	assert.Contains(t, env["message"], "declined")
}

func TestPay_InvalidConfig(t *testing.T) {
	_, err := run(t, "pay", "mobile", "ecocash", "--key", "", "--secret", "s")
	assert.ErrorContains(t, err, "invalid contipay config")
}

func TestProviders(t *testing.T) {
	out, err := run(t, "providers")
	require.NoError(t, err)
	assert.Contains(t, out, "innbucks")
	assert.Contains(t, out, "IB")
	assert.Contains(t, out, "zimswitch")

	out, err = run(t, "providers", "--json")
	require.NoError(t, err)

	var catalogue map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &catalogue))
	assert.Len(t, catalogue["mobile"], 5)
	assert.Len(t, catalogue["card"], 3)
}
