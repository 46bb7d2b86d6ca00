package payment

import "errors"

var (
	ErrPaymentNotComplete = errors.New("payment not complete")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrUnknownProvider    = errors.New("unknown payment provider")
	ErrInvalidRequest     = errors.New("invalid verification request")
	ErrInvalidSignature   = errors.New("invalid callback signature")
)
