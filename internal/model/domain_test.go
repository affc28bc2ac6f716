package model

import (
	"errors"
	"testing"
)

func TestNewDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain hostname", input: "example.com", want: "example.com"},
		{name: "uppercase is normalized", input: "Example.COM", want: "example.com"},
		{name: "surrounding whitespace", input: "  example.com\n", want: "example.com"},
		{name: "https URL", input: "https://example.com/about?x=1", want: "example.com"},
		{name: "http URL", input: "http://example.com", want: "example.com"},
		{name: "trailing dot", input: "example.com.", want: "example.com"},
		{name: "subdomain", input: "shop.example.co.uk", want: "shop.example.co.uk"},
		{name: "empty", input: "", wantErr: ErrEmptyDomain},
		{name: "whitespace only", input: "   ", wantErr: ErrEmptyDomain},
		{name: "no dot", input: "localhost", wantErr: ErrInvalidDomain},
		{name: "embedded space", input: "exa mple.com", wantErr: ErrInvalidDomain},
		{name: "double dot", input: "example..com", wantErr: ErrInvalidDomain},
		{name: "scheme only", input: "https://", wantErr: ErrInvalidDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDomain(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, d.String())
			}
		})
	}
}

func TestDomainPageURLs(t *testing.T) {
	t.Parallel()

	d := MustNewDomain("example.com")

	if got := d.RootURL(); got != "https://example.com" {
		t.Errorf("unexpected root URL: %q", got)
	}

	want := []string{
		"https://example.com",
		"https://about.example.com",
		"https://example.com/about",
	}
	got := d.PageURLs()
	if len(got) != len(want) {
		t.Fatalf("expected %d page URLs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("page URL %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMustNewDomainPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid domain")
		}
	}()
	MustNewDomain("not a domain")
}
