package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"

	"github.com/logoscout/logoscout/internal/model"
)

// Classify maps a transport error onto the fetch error taxonomy.
//
// Order matters: a DNS lookup that times out is still a DNS failure (the
// host is effectively dead, retrying on another protocol cannot help), so
// DNS is checked before the generic timeout case.
func Classify(err error) *model.FetchError {
	kind := model.FetchErrorUnknown

	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &dnsErr):
		kind = model.FetchErrorDNS
	case isTLSError(err):
		kind = model.FetchErrorTLS
	case errors.Is(err, context.DeadlineExceeded):
		kind = model.FetchErrorTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = model.FetchErrorTimeout
	case errors.Is(err, context.Canceled):
		kind = model.FetchErrorTimeout
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			kind = model.FetchErrorConnection
		}
	}

	return &model.FetchError{Kind: kind, Err: err}
}

// isTLSError reports whether the error chain contains a TLS handshake or
// certificate verification failure.
func isTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	var verifyErr *tls.CertificateVerificationError
	var alertErr tls.AlertError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var certInvalid x509.CertificateInvalidError

	return errors.As(err, &recordErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &certInvalid)
}
