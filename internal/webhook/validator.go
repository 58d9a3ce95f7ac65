// Package webhook provides ContiPay webhook signature validation.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Contipay-Signature"

const signaturePrefix = "sha256="

// Validator validates ContiPay webhook signatures.
type Validator struct {
	secret []byte
}

// NewValidator creates a validator for the shared secret. An empty secret
// disables validation.
func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Validator) Enabled() bool {
	return len(v.secret) > 0
}

// ValidateSignature checks signature against body. The signature is hex,
// optionally prefixed with "sha256=". It always passes when no secret is set.
func (v *Validator) ValidateSignature(body []byte, signature string) bool {
	if !v.Enabled() {
		return true
	}

	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, signaturePrefix)
	if signature == "" {
		return false
	}

	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return false
	}

	// Compare signatures (constant-time comparison)
	return hmac.Equal(got, v.sum(body))
}

// Sign returns the hex signature of body.
func (v *Validator) Sign(body []byte) string {
	return hex.EncodeToString(v.sum(body))
}

func (v *Validator) sum(body []byte) []byte {
	h := hmac.New(sha256.New, v.secret)
	h.Write(body)
	return h.Sum(nil)
}
