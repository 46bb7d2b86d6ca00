package payment

import (
	"context"
	"encoding/json"
)

type Provider string

const (
	ProviderESewa  Provider = "ESEWA"
	ProviderKhalti Provider = "KHALTI"
)

// Gateway confirms with a provider that a payment actually completed.
type Gateway interface {
	Provider() Provider
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error)
}

// VerifyRequest carries what the browser got back from the provider.
// TransactionID is eSewa's transaction_uuid; Token is Khalti's payment token.
// Amount is rupees for eSewa and paisa for Khalti, as each API expects.
type VerifyRequest struct {
	TransactionID string
	Token         string
	Amount        float64
}

type VerifyResult struct {
	Provider      Provider
	Status        string
	TransactionID string
	ReferenceCode string
	Amount        float64
	Raw           json.RawMessage
}
