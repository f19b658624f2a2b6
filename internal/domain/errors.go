package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamUnavailable is returned before any network call when no
	// provider credential is configured.
	ErrUpstreamUnavailable = errors.New("SUNO_API_KEY is not configured")

	// ErrUpstreamQueryFailed marks failures of the polling path. It is always
	// joined with the underlying cause.
	ErrUpstreamQueryFailed = errors.New("upstream status query failed")
)

// ValidationError reports the first field rule a GenerationRequest violated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// UpstreamRejectedError carries a non-2xx provider response. Body is kept
// verbatim so the caller can see what the provider complained about.
type UpstreamRejectedError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamRejectedError) Error() string {
	return fmt.Sprintf("Upstream API Error (status %d): %s", e.StatusCode, strings.TrimSpace(e.Body))
}
