package prediction

import "errors"

var (
	ErrPredictionNotFound   = errors.New("prediction not found")
	ErrSelectionNotFound    = errors.New("selected crop not found")
	ErrInvalidInput         = errors.New("invalid prediction input")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrPredictorUnavailable = errors.New("crop predictor unavailable")
)
