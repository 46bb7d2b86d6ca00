package timeline

import "errors"

var (
	ErrTimelineNotFound  = errors.New("timeline not found")
	ErrCropNotFound      = errors.New("crop not found")
	ErrDuplicateTimeline = errors.New("timeline already exists for crop")
	ErrInvalidInput      = errors.New("invalid timeline input")
)
