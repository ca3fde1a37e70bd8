// Package analytics turns per-manager gameweek picks into ownership,
// transfer, captaincy, ranking and correlation tables.
//
// Every function is a pure transform of its arguments: inputs are never
// mutated, outputs are freshly allocated and ordered deterministically, so
// repeated calls on the same input produce identical results. Callers that
// share a growing pick set with an ingestion goroutine must pass a stable
// snapshot.
package analytics
