// Package model defines the core domain types shared across the application.
package model

// MatchResult holds the best candidate found for a single target filename.
// Path is empty when no candidate scored above zero.
type MatchResult struct {
	Target string
	Path   string
	Score  int
}

// Found reports whether any candidate was recorded for the target.
func (m MatchResult) Found() bool {
	return m.Path != ""
}

// Meets reports whether the result clears the acceptance threshold.
func (m MatchResult) Meets(threshold int) bool {
	return m.Path != "" && m.Score >= threshold
}

// ReconciliationOutcome holds one reconciliation run's results. All carries
// every result in target input order; Matched and Unmatched partition the
// same results by the acceptance threshold, each preserving input order.
// Unmatched entries keep their best-effort path and score so the operator
// can review close calls.
type ReconciliationOutcome struct {
	All          []MatchResult
	Matched      []MatchResult
	Unmatched    []MatchResult
	MatchedCount int
	TotalCount   int
}
