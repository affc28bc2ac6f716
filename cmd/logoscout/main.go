// Package main provides the entry point for the logoscout CLI.
//
// logoscout extracts a representative brand logo URL (and favicon) for each
// domain in an input list, and measures extraction quality against a
// labeled sample.
//
// Usage:
//
//	logoscout crawl example.com
//	logoscout crawl --list domains.csv --column 1
//	logoscout validate --results results.csv --truth truth.csv
//
// See --help for all available options.
package main

// main is the entry point for logoscout.
func main() {
	Execute()
}
