// Package document provides a parsed, queryable representation of fetched
// markup. Parsing is best-effort: malformed HTML yields whatever tree can
// be recovered, and unparseable input yields an empty document rather than
// an error, which naturally produces zero candidates downstream.
package document
