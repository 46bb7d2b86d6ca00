package payment

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"cropadvisor-be/internal/signature"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const callbackFields = "transaction_code,status,total_amount,transaction_uuid,product_code,signed_field_names"

// signedCallback builds a redirect payload the way eSewa does.
func signedCallback(t *testing.T, signer *signature.Signer, amount any, mutate func(map[string]any)) string {
	t.Helper()

	payload := map[string]any{
		"transaction_code":   "000AWEO",
		"status":             "COMPLETE",
		"total_amount":       amount,
		"transaction_uuid":   "250610-162413",
		"product_code":       "EPAYTEST",
		"signed_field_names": callbackFields,
	}

	amountText, _ := json.Marshal(amount)
	message := "transaction_code=000AWEO,status=COMPLETE,total_amount=" + fieldText(amountText) +
		",transaction_uuid=250610-162413,product_code=EPAYTEST,signed_field_names=" + callbackFields
	sig, err := signer.Sign(message)
	require.NoError(t, err)
	payload["signature"] = sig

	if mutate != nil {
		mutate(payload)
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecodeESewaCallback(t *testing.T) {
	signer := signature.NewSigner("8gBm/:&EnhH.1/q")

	t.Run("String amount", func(t *testing.T) {
		cb, err := DecodeESewaCallback(signedCallback(t, signer, "1,000.0", nil), signer)
		require.NoError(t, err)
		assert.Equal(t, "250610-162413", cb.TransactionUUID)
		assert.Equal(t, "000AWEO", cb.TransactionCode)
		assert.Equal(t, "COMPLETE", cb.Status)
		assert.Equal(t, "EPAYTEST", cb.ProductCode)
		assert.Equal(t, 1000.0, cb.TotalAmount)
	})

	t.Run("Numeric amount", func(t *testing.T) {
		cb, err := DecodeESewaCallback(signedCallback(t, signer, 100, nil), signer)
		require.NoError(t, err)
		assert.Equal(t, 100.0, cb.TotalAmount)
	})

	t.Run("Tampered amount", func(t *testing.T) {
		data := signedCallback(t, signer, "100.0", func(p map[string]any) {
			p["total_amount"] = "1.0"
		})

		_, err := DecodeESewaCallback(data, signer)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Signed by another key", func(t *testing.T) {
		data := signedCallback(t, signature.NewSigner("othersecret"), "100.0", nil)

		_, err := DecodeESewaCallback(data, signer)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Signed field missing", func(t *testing.T) {
		data := signedCallback(t, signer, "100.0", func(p map[string]any) {
			delete(p, "transaction_code")
		})

		_, err := DecodeESewaCallback(data, signer)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("No signature", func(t *testing.T) {
		data := signedCallback(t, signer, "100.0", func(p map[string]any) {
			delete(p, "signature")
		})

		_, err := DecodeESewaCallback(data, signer)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Not base64", func(t *testing.T) {
		_, err := DecodeESewaCallback("%%%", signer)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := DecodeESewaCallback(base64.StdEncoding.EncodeToString([]byte("hello")), signer)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Missing secret", func(t *testing.T) {
		data := signedCallback(t, signer, "100.0", nil)

		_, err := DecodeESewaCallback(data, signature.NewSigner(""))
		assert.ErrorIs(t, err, signature.ErrMissingSecret)
	})
}
