// Package model defines the immutable data types that flow through the
// logoscout pipeline: domains, fetch results, logo candidates, and
// per-domain crawl results.
//
// Every type in this package is produced once and consumed within a single
// domain's processing. Nothing is shared or mutated after creation, which
// is what makes the per-domain pipeline safe to run in parallel.
package model
