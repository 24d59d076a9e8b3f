package apperrors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrNotConfigured  = errors.New("not configured")
	ErrInvalidRequest = errors.New("invalid request")
	ErrProviderAPI    = errors.New("provider api error")
)
