package model

import "fmt"

// FetchErrorKind classifies why a fetch failed. The classification decides
// both the retry behavior (DNS failures are not retried, the host simply
// does not exist) and how the failure is reported.
type FetchErrorKind int

const (
	// FetchErrorUnknown is an unclassified failure.
	FetchErrorUnknown FetchErrorKind = iota
	// FetchErrorTimeout indicates the request exceeded its deadline.
	FetchErrorTimeout
	// FetchErrorDNS indicates the hostname did not resolve.
	FetchErrorDNS
	// FetchErrorTLS indicates a TLS handshake or certificate failure.
	FetchErrorTLS
	// FetchErrorHTTPStatus indicates the server answered with an error status.
	FetchErrorHTTPStatus
	// FetchErrorConnection indicates a transport-level connection failure.
	FetchErrorConnection
)

// String returns the string representation of the FetchErrorKind.
func (k FetchErrorKind) String() string {
	switch k {
	case FetchErrorTimeout:
		return "timeout"
	case FetchErrorDNS:
		return "dns"
	case FetchErrorTLS:
		return "tls"
	case FetchErrorHTTPStatus:
		return "http_status"
	case FetchErrorConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// FetchError carries the classification and underlying cause of a failed
// fetch attempt.
type FetchError struct {
	// Kind is the failure classification.
	Kind FetchErrorKind

	// StatusCode is set when Kind is FetchErrorHTTPStatus.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == FetchErrorHTTPStatus {
		return fmt.Sprintf("fetch failed: http status %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s)", e.Kind)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchResult is the outcome of fetching a single page.
//
// Invariant: either Body is populated and Err is nil, or Body is nil and
// Err is set. Never both. OK() is the canonical check.
type FetchResult struct {
	// Domain is the domain this fetch belongs to.
	Domain Domain

	// FinalURL is the URL after following redirects. On failure it holds
	// the URL that was attempted.
	FinalURL string

	// StatusCode is the HTTP response status code (0 on transport failure).
	StatusCode int

	// ContentType is the response Content-Type header, used for
	// charset-aware parsing.
	ContentType string

	// Protocol records the negotiated protocol ("HTTP/2.0" or "HTTP/1.1").
	Protocol string

	// Body is the raw response body, capped at the configured size limit.
	Body []byte

	// Err is the classified failure when the fetch did not succeed.
	Err *FetchError
}

// OK reports whether the fetch produced a usable body.
func (r *FetchResult) OK() bool {
	return r.Err == nil
}
