package model

import "time"

// Run records one reconciliation run: where the targets came from, the
// threshold in force, and the summary counts shown to the operator.
type Run struct {
	StartedAt    time.Time
	CompletedAt  time.Time
	CSVPath      string
	ColumnName   string
	ID           int64
	Threshold    int
	TotalCount   int
	MatchedCount int
}

// StagedFile records one file linked (or copied) into a staging tree.
type StagedFile struct {
	StagedAt      time.Time
	Target        string
	SourcePath    string
	StagedPath    string
	SanitizedName string
	ID            int64
	RunID         int64
}
