package signature

import "errors"

var (
	// ErrMissingSecret means the signer was built without key material.
	ErrMissingSecret = errors.New("signing secret is not configured")
	// ErrEmptyMessage means there was nothing to sign.
	ErrEmptyMessage = errors.New("message must be a non-empty string")
)
