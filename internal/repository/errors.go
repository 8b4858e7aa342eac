package repository

import "errors"

// Errors returned by the provider repositories. They are wrapped with
// request details, so compare with errors.Is.
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrServiceRejected    = errors.New("service rejected request")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrNotFound           = errors.New("location not found")
	ErrAPIKeyMissing      = errors.New("API key missing")
)
