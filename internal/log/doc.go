// Package log provides logging utilities built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (inline-SVG data
//     URIs and raw markup would otherwise flood the log output)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("logo found",
//	    "url", dataURI, // truncated to a readable prefix
//	    "domain", "example.com",
//	)
package log
