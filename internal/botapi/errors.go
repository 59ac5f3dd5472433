package botapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ErrorType categorises a backend communication failure.
type ErrorType int

const (
	// ErrTypeNetwork indicates a generic network-level failure.
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request timed out.
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend refused the connection.
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates hostname resolution failed.
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-success HTTP status.
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body.
	ErrTypeParse
	// ErrTypeUnknown indicates an unclassified failure.
	ErrTypeUnknown
)

// String returns a human-readable name for the error type.
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return "Unknown Error"
	}
}

// APIError is a classified failure from the backend client.
type APIError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for chain inspection.
func (e *APIError) Unwrap() error { return e.Err }

// classify analyses a transport error and wraps it with a specific type.
func classify(message string, err error) *APIError {
	if os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("cannot resolve %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{Type: ErrTypeConnectionRefused, Message: message, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
		}
		return classify(message, urlErr.Err)
	}

	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// newHTTPError wraps a non-success status code.
func newHTTPError(statusCode int, message string) *APIError {
	return &APIError{Type: ErrTypeHTTP, Message: message, StatusCode: statusCode}
}

// newParseError wraps a response-body decoding failure.
func newParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// IsNetworkError reports whether err is any network-level failure,
// including timeouts, refused connections and DNS failures.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsHTTPError reports whether err carries a non-success HTTP status.
func IsHTTPError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTypeHTTP
}

// ShortMessage returns a concise, user-facing description of err,
// suitable for a toast.
func ShortMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Backend refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve backend hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		return fmt.Sprintf("Backend error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse backend response"
	default:
		return apiErr.Message
	}
}
