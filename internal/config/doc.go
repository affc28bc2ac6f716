// Package config provides configuration structures and utilities for
// logoscout. It defines the main options for crawling, output, and result
// persistence, plus the optional .logoscout YAML file with identity-pool
// and per-domain overrides.
package config
