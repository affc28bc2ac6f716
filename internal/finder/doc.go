// Package finder implements the logo detection strategies. Each finder
// scans the document model for one category of logo signal and returns
// ranked candidates; the pipeline's strategy chain consults them in a
// fixed priority order.
package finder
