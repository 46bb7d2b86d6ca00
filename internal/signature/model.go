package signature

import "encoding/json"

// SignatureRequest is the body of POST /generate-signature. Message is kept
// raw so a non-string value can be told apart from a missing one.
type SignatureRequest struct {
	Message json.RawMessage `json:"message"`
}

type SignatureResponse struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
