package model

import (
	"errors"
	"strings"
)

// Domain errors.
var (
	// ErrEmptyDomain is returned when the domain string is empty.
	ErrEmptyDomain = errors.New("domain cannot be empty")
	// ErrInvalidDomain is returned when the domain format is invalid.
	ErrInvalidDomain = errors.New("invalid domain format")
)

// Domain is an immutable value object representing a bare hostname, the
// unit of work for the crawl pipeline. It normalizes common input noise
// (copy-pasted URLs, trailing dots, mixed case) at construction time so
// the rest of the pipeline never has to.
type Domain struct {
	name string
}

// NewDomain creates a Domain from a string.
// Input is trimmed and lowercased; a leading http:// or https:// scheme
// and anything after the host (path, query, fragment) are stripped, since
// domain lists in the wild frequently contain full URLs.
// Returns an error if the remaining host is empty or not a plausible
// hostname.
func NewDomain(raw string) (Domain, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return Domain{}, ErrEmptyDomain
	}

	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	if i := strings.IndexAny(name, "/?#"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, ".")

	if name == "" || !isPlausibleHostname(name) {
		return Domain{}, ErrInvalidDomain
	}

	return Domain{name: name}, nil
}

// MustNewDomain creates a new Domain or panics if invalid.
// Use only for known-valid domains in tests or initialization.
func MustNewDomain(raw string) Domain {
	d, err := NewDomain(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// isPlausibleHostname performs a light sanity check rather than full RFC
// validation. The fetcher will surface DNS errors for hostnames that pass
// this check but do not exist, so strictness here buys little.
func isPlausibleHostname(name string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '.' || r == ':':
		default:
			return false
		}
	}
	return !strings.HasPrefix(name, ".") && !strings.Contains(name, "..")
}

// String returns the normalized hostname.
func (d Domain) String() string {
	return d.name
}

// IsZero reports whether the domain is the zero value.
func (d Domain) IsZero() bool {
	return d.name == ""
}

// RootURL returns the canonical HTTPS URL for the domain's front page.
func (d Domain) RootURL() string {
	return "https://" + d.name
}

// PageURLs returns the candidate page URLs for the domain in priority
// order. The front page is the best source of brand markup; corporate
// sites occasionally keep it on an about subdomain or an /about page, so
// those are tried when the front page yields no logo.
func (d Domain) PageURLs() []string {
	return []string{
		d.RootURL(),
		"https://about." + d.name,
		"https://" + d.name + "/about",
	}
}
