// Package metrics scores extraction quality against a ground-truth set.
//
// Every evaluated domain lands in exactly one bucket: correct (the expected
// logo was extracted), wrong (a logo was extracted but the wrong one, or
// one was extracted where none exists), missed (a logo exists but nothing
// was extracted), or not_working (the site was unreachable, excluded from
// precision and recall entirely).
package metrics
