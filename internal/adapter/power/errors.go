package power

import (
	"errors"
	"fmt"
)

// Fetch failure taxonomy. The HTTP layer maps these onto response codes;
// Retryable tells callers which failures are worth another attempt.
var (
	// ErrUpstreamTimeout marks a transport-level timeout talking to the
	// NASA POWER API.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrMalformedResponse marks a payload missing the expected
	// properties.parameter structure.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// StatusError is a non-2xx response from the upstream API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream error: status %d", e.Code)
}

// Retryable reports whether a fetch failure is a candidate for caller-side
// retry. Timeouts and 5xx responses are transient; client errors and
// malformed payloads will not improve on retry.
func Retryable(err error) bool {
	if errors.Is(err, ErrUpstreamTimeout) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500
	}
	return false
}
