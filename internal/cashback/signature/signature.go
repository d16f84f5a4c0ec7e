// Package signature verifies Shopify-style HMAC webhook signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
)

// Verifier checks that a raw request body was signed with the shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) Verifier {
	if secret == "" {
		return Verifier{}
	}
	return Verifier{secret: []byte(secret)}
}

// Verify computes HMAC-SHA256 over the exact raw body bytes and compares it
// with the base64 signature header in constant time. An unconfigured secret
// fails closed: every delivery is rejected.
func (v Verifier) Verify(body []byte, header string) error {
	if len(v.secret) == 0 {
		return domain.ErrMissingSecret
	}

	claimed := strings.TrimSpace(header)
	if claimed == "" {
		return domain.ErrInvalidSignature
	}

	expected := Compute(v.secret, body)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(claimed)) != 1 {
		return domain.ErrInvalidSignature
	}
	return nil
}

// Compute returns the base64 HMAC-SHA256 of body under secret. Exported so
// tests and delivery tooling can sign payloads the same way upstream does.
func Compute(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
