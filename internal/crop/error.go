package crop

import "errors"

var (
	ErrCropNotFound  = errors.New("crop not found")
	ErrInvalidInput  = errors.New("invalid crop input")
	ErrDuplicateCrop = errors.New("crop already exists")
)
