package forecast

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrMissingCredential is returned before any request when no service key is configured.
	ErrMissingCredential = errors.New("forecast: service key is not configured")

	// ErrMalformedEnvelope wraps responses that lack the response wrapper or
	// cannot be decoded.
	ErrMalformedEnvelope = errors.New("forecast: malformed response envelope")

	// ErrEmptyResult is returned when the provider answered successfully with no records.
	ErrEmptyResult = errors.New("forecast: provider returned no records")
)

// ProviderError is a non-"00" result code reported in the response header.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("forecast: provider error [%s]: %s", e.Code, e.Message)
}

// TransportError wraps network failures, timeouts and non-2xx statuses.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("forecast: transport error during %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was aborted by the configured
// timeout or a context deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// StatusError is a non-2xx HTTP response; it is carried inside a TransportError.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Outcome labels an error for metrics.
func Outcome(err error) string {
	var providerErr *ProviderError
	var transportErr *TransportError

	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrMalformedEnvelope):
		return "malformed"
	case errors.Is(err, ErrEmptyResult):
		return "empty"
	case errors.As(err, &providerErr):
		return "provider_error"
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return "timeout"
		}
		return "transport_error"
	default:
		return "error"
	}
}
