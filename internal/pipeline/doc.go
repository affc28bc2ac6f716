// Package pipeline orchestrates logo extraction for domains.
//
// A single domain flows through three stages: fetch the candidate pages,
// parse whatever HTML comes back, and run the finder chain over the parsed
// document. The first finder that yields a resolvable candidate wins; later
// pages are only consulted when earlier ones produce nothing.
//
// Batch processing runs many domains concurrently with a bounded worker
// count using errgroup. Individual domain failures never abort the batch;
// they surface as unreachable or not-found results in the output.
package pipeline
