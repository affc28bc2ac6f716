package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/logoscout/logoscout/internal/identity"
	"github.com/logoscout/logoscout/internal/model"
)

// failingTransport always fails with the given error, simulating a server
// that rejects the primary protocol attempt.
type failingTransport struct {
	err error
}

func (t *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, t.err
}

func TestFetchURL(t *testing.T) {
	t.Parallel()

	t.Run("successful fetch returns body and final URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("User-Agent") == "" {
				t.Error("expected a User-Agent header")
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html><body>hello</body></html>")
		}))
		defer server.Close()

		f := New()
		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)

		if !result.OK() {
			t.Fatalf("unexpected fetch error: %v", result.Err)
		}
		if !strings.Contains(string(result.Body), "hello") {
			t.Errorf("unexpected body: %q", result.Body)
		}
		if result.FinalURL != server.URL {
			t.Errorf("expected final URL %q, got %q", server.URL, result.FinalURL)
		}
		if result.ContentType != "text/html; charset=utf-8" {
			t.Errorf("unexpected content type: %q", result.ContentType)
		}
		if result.Err != nil && result.Body != nil {
			t.Error("body and error must never both be set")
		}
	})

	t.Run("redirects are followed and recorded", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" {
				http.Redirect(w, r, server.URL+"/home", http.StatusMovedPermanently)
				return
			}
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		f := New()
		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)

		if !result.OK() {
			t.Fatalf("unexpected fetch error: %v", result.Err)
		}
		if result.FinalURL != server.URL+"/home" {
			t.Errorf("expected final URL to reflect redirect, got %q", result.FinalURL)
		}
	})

	t.Run("primary transport failure falls back to the legacy client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "<html>served over the fallback</html>")
		}))
		defer server.Close()

		broken := &http.Client{Transport: &failingTransport{err: errors.New("protocol rejected")}}
		f := New(WithClients(broken, server.Client()))

		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)
		if !result.OK() {
			t.Fatalf("expected fallback to succeed, got %v", result.Err)
		}
		if !strings.Contains(string(result.Body), "fallback") {
			t.Errorf("unexpected body: %q", result.Body)
		}
	})

	t.Run("error status triggers exactly one retry with a new identity", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		agents := make(chan string, 2)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents <- r.Header.Get("User-Agent")
			if requests.Add(1) == 1 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			fmt.Fprint(w, "<html></html>")
		}))
		defer server.Close()

		f := New(
			WithClients(server.Client(), server.Client()),
			WithIdentityPool(identity.NewPool("agent-a", "agent-b")),
		)

		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)
		if !result.OK() {
			t.Fatalf("expected retry to succeed, got %v", result.Err)
		}
		if got := requests.Load(); got != 2 {
			t.Errorf("expected exactly 2 requests, got %d", got)
		}

		first, second := <-agents, <-agents
		if first == second {
			t.Errorf("retry must use a different identity, both were %q", first)
		}
	})

	t.Run("both attempts failing yields a classified error and no body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		f := New(WithClients(server.Client(), server.Client()))
		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)

		if result.OK() {
			t.Fatal("expected fetch to fail")
		}
		if result.Body != nil {
			t.Error("failed fetch must not carry a body")
		}
		if result.Err.Kind != model.FetchErrorHTTPStatus {
			t.Errorf("expected http_status classification, got %v", result.Err.Kind)
		}
		if result.Err.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", result.Err.StatusCode)
		}
	})

	t.Run("dns failure skips the fallback attempt", func(t *testing.T) {
		t.Parallel()

		dnsErr := &net.DNSError{Err: "no such host", Name: "nonexistent.invalid", IsNotFound: true}
		broken := &http.Client{Transport: &failingTransport{err: dnsErr}}

		var fallbackUsed atomic.Bool
		fallback := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			fallbackUsed.Store(true)
			return nil, errors.New("should not be called")
		})}

		f := New(WithClients(broken, fallback))
		result := f.FetchURL(context.Background(), model.MustNewDomain("nonexistent.invalid.example.com"), "https://nonexistent.invalid")

		if result.OK() {
			t.Fatal("expected fetch to fail")
		}
		if result.Err.Kind != model.FetchErrorDNS {
			t.Errorf("expected dns classification, got %v", result.Err.Kind)
		}
		if fallbackUsed.Load() {
			t.Error("dns failure must not trigger the fallback attempt")
		}
	})

	t.Run("body is capped at the configured size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, strings.Repeat("x", 4096))
		}))
		defer server.Close()

		f := New(WithMaxBodySize(1024))
		result := f.FetchURL(context.Background(), model.MustNewDomain("example.com"), server.URL)

		if !result.OK() {
			t.Fatalf("unexpected fetch error: %v", result.Err)
		}
		if len(result.Body) != 1024 {
			t.Errorf("expected body capped at 1024 bytes, got %d", len(result.Body))
		}
	})
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want model.FetchErrorKind
	}{
		{
			name: "dns error",
			err:  &net.DNSError{Err: "no such host", IsNotFound: true},
			want: model.FetchErrorDNS,
		},
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
			want: model.FetchErrorTimeout,
		},
		{
			name: "op error",
			err:  &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			want: model.FetchErrorConnection,
		},
		{
			name: "unclassified",
			err:  errors.New("something odd"),
			want: model.FetchErrorUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Kind)
			}
		})
	}
}

func TestFetchRespectsContextTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		fmt.Fprint(w, "<html></html>")
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := New()
	result := f.FetchURL(ctx, model.MustNewDomain("example.com"), server.URL)

	if result.OK() {
		t.Fatal("expected fetch to fail under a cancelled context")
	}
	if result.Err.Kind != model.FetchErrorTimeout {
		t.Errorf("expected timeout classification, got %v", result.Err.Kind)
	}
}
