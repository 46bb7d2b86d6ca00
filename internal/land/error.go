package land

import "errors"

var (
	ErrLandNotFound    = errors.New("land not found")
	ErrInvalidInput    = errors.New("invalid land input")
	ErrUnauthenticated = errors.New("unauthenticated")
)
