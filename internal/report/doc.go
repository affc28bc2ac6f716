// Package report provides output writers for crawl results and quality
// metrics.
//
// This package contains writers for different output formats:
//   - CSVWriter: the canonical domain,logo_url,favicon_url table
//   - JSONWriter: structured output for tool integration
//   - SimpleWriter: human-readable text for terminal display
//   - MarkdownWriter: shareable metrics reports
//
// Design decision: We separate report writing from the data structures
// (which live in the model and metrics packages) so new output formats can
// be added without touching the core types.
package report
