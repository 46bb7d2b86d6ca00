package payment

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cropadvisor-be/internal/signature"
)

// ESewaCallback is the payload eSewa appends as ?data= to the success URL.
type ESewaCallback struct {
	TransactionCode string
	Status          string
	TotalAmount     float64
	TransactionUUID string
	ProductCode     string
}

// DecodeESewaCallback decodes eSewa's base64 redirect payload and checks its
// signature. The signed message is rebuilt from signed_field_names in the
// order eSewa lists them.
func DecodeESewaCallback(data string, signer *signature.Signer) (*ESewaCallback, error) {
	if !signer.Configured() {
		return nil, signature.ErrMissingSecret
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: data is not base64", ErrInvalidRequest)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: data is not a JSON object", ErrInvalidRequest)
	}

	names := fieldText(payload["signed_field_names"])
	sig := fieldText(payload["signature"])
	if names == "" || sig == "" {
		return nil, fmt.Errorf("%w: signed_field_names and signature are required", ErrInvalidRequest)
	}

	fields := make([]signature.Field, 0, strings.Count(names, ",")+1)
	for _, name := range strings.Split(names, ",") {
		value, ok := payload[name]
		if !ok {
			return nil, fmt.Errorf("%w: signed field %q missing", ErrInvalidSignature, name)
		}
		fields = append(fields, signature.Field{Key: name, Value: fieldText(value)})
	}

	if !signer.Verify(signature.JoinFields(fields), sig) {
		return nil, ErrInvalidSignature
	}

	cb := &ESewaCallback{
		TransactionCode: fieldText(payload["transaction_code"]),
		Status:          fieldText(payload["status"]),
		TransactionUUID: fieldText(payload["transaction_uuid"]),
		ProductCode:     fieldText(payload["product_code"]),
	}
	if cb.TransactionUUID == "" {
		return nil, fmt.Errorf("%w: transaction_uuid missing", ErrInvalidRequest)
	}

	amount := strings.ReplaceAll(fieldText(payload["total_amount"]), ",", "")
	cb.TotalAmount, err = strconv.ParseFloat(amount, 64)
	if err != nil || cb.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: invalid total_amount", ErrInvalidRequest)
	}

	return cb, nil
}

// fieldText renders a JSON value the way it appears in the signed message:
// strings unquoted, everything else verbatim.
func fieldText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) > 0 && v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}
