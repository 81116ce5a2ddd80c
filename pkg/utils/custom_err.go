package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrTooManyDays       = errors.New("too many days requested")
	ErrGenerationFailed  = errors.New("generation failed")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrRateLimited       = errors.New("rate limited")
)

// IsUpstreamError reports whether err came from the completion service or
// from parsing what it returned.
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) || errors.Is(err, ErrMalformedResponse)
}
