package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/logoscout/logoscout/internal/identity"
	"github.com/logoscout/logoscout/internal/model"
)

// Default fetch parameters. These mirror what a patient browser does:
// generous enough for slow origins, bounded enough that a dead domain
// cannot stall a batch.
const (
	// DefaultTimeout is the per-request ceiling covering connect, TLS,
	// redirects, and body read.
	DefaultTimeout = 10 * time.Second

	// DefaultDialTimeout bounds connection establishment separately, so a
	// black-holed SYN fails fast instead of consuming the whole budget.
	DefaultDialTimeout = 5 * time.Second

	// DefaultMaxBodySize caps response bodies. Logo markup lives near the
	// top of the document; anything beyond a few megabytes is not HTML
	// worth scanning.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultMaxRedirects is the redirect-following limit.
	DefaultMaxRedirects = 5
)

// browserHeaders is the header set sent on the primary HTTP/2 attempt.
// It reproduces a Chrome navigation request closely enough to pass
// header-fingerprinting filters.
//
// Accept-Encoding is deliberately absent: net/http negotiates gzip itself
// and transparently decompresses only when it set the header.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
	"Accept-Language":           "en-US,en;q=0.9",
	"DNT":                       "1",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"sec-ch-ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
	"sec-ch-ua-mobile":          "?0",
	"sec-ch-ua-platform":        `"Linux"`,
	"Cache-Control":             "max-age=0",
}

// fallbackHeaders is the minimal header set for the HTTP/1.1 retry. Some
// origins reject requests carrying the full browser fingerprint; the retry
// sends as little as possible.
var fallbackHeaders = map[string]string{
	"Accept": "*/*",
}

// Fetcher retrieves page documents with protocol and identity fallback.
//
// Design decision: the two attempts use two separately configured
// http.Clients rather than one client with per-request overrides because:
//  1. Protocol selection lives on the Transport, not the Request
//  2. Connection pools for the two protocols stay independent
//  3. Tests can inject either client
type Fetcher struct {
	// h2 is the client for the primary attempt (HTTP/2 preferred).
	h2 *http.Client

	// h1 is the client for the fallback attempt (HTTP/2 disabled).
	h1 *http.Client

	// pool supplies client identities.
	pool *identity.Pool

	// timeout is the per-request ceiling.
	timeout time.Duration

	// dialTimeout bounds connection establishment.
	dialTimeout time.Duration

	// maxBodySize caps response body reads.
	maxBodySize int64

	// maxRedirects limits redirect following.
	maxRedirects int

	// extraHeaders are appended to every attempt (from the config file).
	extraHeaders map[string]string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithDialTimeout sets the connection establishment timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.dialTimeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithMaxRedirects sets the redirect-following limit.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxRedirects = n
		}
	}
}

// WithIdentityPool sets the identity pool used for User-Agent selection.
func WithIdentityPool(pool *identity.Pool) Option {
	return func(f *Fetcher) {
		f.pool = pool
	}
}

// WithExtraHeaders appends headers to every request. Useful for origins
// that need a cookie or custom header to serve the real page.
func WithExtraHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.extraHeaders = headers
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithClients replaces both HTTP clients. Intended for tests that need to
// control transport behavior directly.
func WithClients(h2, h1 *http.Client) Option {
	return func(f *Fetcher) {
		f.h2 = h2
		f.h1 = h1
	}
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultTimeout,
		dialTimeout:  DefaultDialTimeout,
		maxBodySize:  DefaultMaxBodySize,
		maxRedirects: DefaultMaxRedirects,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.pool == nil {
		f.pool = identity.NewPool()
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.h2 == nil {
		f.h2 = f.newClient(true)
	}
	if f.h1 == nil {
		f.h1 = f.newClient(false)
	}

	return f
}

// newClient builds an HTTP client for one of the two attempts.
// A non-nil empty TLSNextProto map disables HTTP/2 negotiation entirely,
// which is how the fallback client pins HTTP/1.1.
func (f *Fetcher) newClient(http2 bool) *http.Client {
	dialer := &net.Dialer{Timeout: f.dialTimeout}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: f.dialTimeout,
		ForceAttemptHTTP2:   http2,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
	}
	if !http2 {
		transport.TLSNextProto = make(map[string]func(authority string, c *tls.Conn) http.RoundTripper)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}
}

// FetchURL retrieves a specific page URL for the domain, applying the
// protocol/identity fallback. The returned FetchResult always satisfies
// the body-xor-error invariant; failures are classified, never raised.
func (f *Fetcher) FetchURL(ctx context.Context, domain model.Domain, pageURL string) *model.FetchResult {
	ua := f.pool.Pick("")

	result, ferr := f.attempt(ctx, f.h2, pageURL, ua, browserHeaders)
	if ferr == nil {
		result.Domain = domain
		return result
	}

	f.logger.Debug("primary attempt failed",
		"domain", domain.String(),
		"url", pageURL,
		"kind", ferr.Kind.String(),
		"error", ferr.Err,
	)

	// A hostname that does not resolve will not resolve over HTTP/1.1
	// either. Report the domain dead without burning a second attempt.
	if ferr.Kind == model.FetchErrorDNS {
		return &model.FetchResult{Domain: domain, FinalURL: pageURL, Err: ferr}
	}

	// Retry exactly once: legacy protocol, fresh identity, minimal headers.
	fallbackUA := f.pool.Pick(ua)
	result, ferr2 := f.attempt(ctx, f.h1, pageURL, fallbackUA, fallbackHeaders)
	if ferr2 == nil {
		f.logger.Debug("fallback attempt succeeded",
			"domain", domain.String(),
			"url", pageURL,
			"protocol", result.Protocol,
		)
		result.Domain = domain
		return result
	}

	return &model.FetchResult{Domain: domain, FinalURL: pageURL, Err: ferr2}
}

// attempt performs a single GET and converts the response into a
// FetchResult. HTTP error statuses (>= 400) count as failures so the
// caller's fallback logic can treat protocol rejection and blocking
// uniformly with transport errors.
func (f *Fetcher) attempt(ctx context.Context, client *http.Client, pageURL, ua string, headers map[string]string) (*model.FetchResult, *model.FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &model.FetchError{Kind: model.FetchErrorUnknown, Err: err}
	}

	req.Header.Set("User-Agent", ua)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for k, v := range f.extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Drain so the connection can be reused by the fallback.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBodySize))
		return nil, &model.FetchError{
			Kind:       model.FetchErrorHTTPStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, Classify(err)
	}

	return &model.FetchResult{
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Protocol:    resp.Proto,
		Body:        body,
	}, nil
}
