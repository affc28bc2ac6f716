package config

// DomainConfig holds per-domain overrides for crawling a single domain.
type DomainConfig struct {
	// Headers are custom HTTP headers to include in requests to this
	// domain, on top of the browser identity headers.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Skip excludes the domain from crawling entirely. Its output row is
	// still emitted (as not found) so results line up with the input list.
	Skip bool `yaml:"skip,omitempty"`
}

// File represents the structure of the .logoscout configuration file.
type File struct {
	// UserAgents overrides the built-in browser identity pool.
	UserAgents []string `yaml:"userAgents,omitempty"`

	// Headers are extra HTTP headers applied to every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Domains maps domain names to their per-domain overrides.
	// Keys are bare hostnames (e.g. "example.com").
	Domains map[string]DomainConfig `yaml:"domains,omitempty"`
}

// GetDomainConfig returns the configuration for a specific domain, with
// the global headers merged in under any per-domain ones.
func (cf *File) GetDomainConfig(domain string) DomainConfig {
	result := DomainConfig{}

	if len(cf.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Headers))
		for k, v := range cf.Headers {
			result.Headers[k] = v
		}
	}

	dc, ok := cf.Domains[domain]
	if !ok {
		return result
	}

	result.Skip = dc.Skip
	if len(dc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(dc.Headers))
		}
		for k, v := range dc.Headers {
			result.Headers[k] = v
		}
	}

	return result
}

// ShouldSkip reports whether the domain is excluded from crawling.
func (cf *File) ShouldSkip(domain string) bool {
	return cf.Domains[domain].Skip
}
