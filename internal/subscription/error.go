package subscription

import "errors"

var (
	ErrNotFound           = errors.New("subscription not found")
	ErrInvalidInput       = errors.New("invalid subscription input")
	ErrUnknownPlan        = errors.New("unknown plan")
	ErrAmountMismatch     = errors.New("amount mismatch")
	ErrTransactionClaimed = errors.New("transaction already used by another account")
)
