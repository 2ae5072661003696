package approval

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrVersionConflict   = errors.New("application was modified by another request, reload and retry")
)
