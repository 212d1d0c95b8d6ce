// Package draw provides the data model and the pure decision logic for Powerball results.
//
// The draw package holds the types persisted by the scraper (draw results, next-draw
// projections, history records, latest snapshots) together with the normalizers that turn
// loosely formatted page text into canonical values: dates become YYYY-MM-DD strings and
// currency text becomes integer amounts. It also decides whether an extraction is complete
// and merges new records into the deduplicated, newest-first history.
//
// Nothing in this package performs I/O or logs. Problems are reported as Diagnostic values
// so callers decide how to surface them.
package draw
