// internal/services/errors.go
package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Services
// wrap these with fmt.Errorf("%w: ...") so callers match with errors.Is
// while logs keep the detail.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstreamFailure = errors.New("upstream failure")
)
