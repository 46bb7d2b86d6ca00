// Package signature issues and checks the HMAC-SHA256 tags the payment
// gateway expects on checkout requests.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Field is one key=value pair of a gateway message. Order is significant.
type Field struct {
	Key   string
	Value string
}

// Signer holds the process secret. It has no mutable state and is safe for
// concurrent use.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Configured reports whether key material is present.
func (s *Signer) Configured() bool {
	return s != nil && len(s.secret) > 0
}

// Sign returns base64(HMAC-SHA256(secret, message)).
func (s *Signer) Sign(message string) (string, error) {
	if !s.Configured() {
		return "", ErrMissingSecret
	}
	if message == "" {
		return "", ErrEmptyMessage
	}

	return base64.StdEncoding.EncodeToString(s.mac(message)), nil
}

// Verify checks a base64 tag against message in constant time.
func (s *Signer) Verify(message, signature string) bool {
	if !s.Configured() || message == "" {
		return false
	}

	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, s.mac(message))
}

func (s *Signer) mac(message string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(message))
	return h.Sum(nil)
}

// JoinFields renders fields in the comma-delimited layout eSewa signs.
func JoinFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Key+"="+f.Value)
	}
	return strings.Join(parts, ",")
}
