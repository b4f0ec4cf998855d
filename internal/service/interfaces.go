// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/collectiontools/stagehand/internal/model"
)

// ProgressFunc receives a completion fraction between 0.0 and 1.0. The
// stream is monotonic non-decreasing and ends at exactly 1.0 when the
// producing operation runs to completion.
type ProgressFunc func(fraction float64)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Search scope operations
	AddSearchDir(ctx context.Context, path string) (*model.SearchDirectory, error)
	ListSearchDirs(ctx context.Context) ([]model.SearchDirectory, error)
	RemoveSearchDir(ctx context.Context, path string) error
	ClearSearchDirs(ctx context.Context) error

	// Reconciliation run operations
	SaveRun(ctx context.Context, run *model.Run, outcome *model.ReconciliationOutcome) (int64, error)
	GetLatestRun(ctx context.Context) (*model.Run, error)
	GetRunOutcome(ctx context.Context, runID int64) (*model.ReconciliationOutcome, error)

	// Staging operations
	SaveStagedFiles(ctx context.Context, files []model.StagedFile) error
	ListStagedFiles(ctx context.Context, runID int64) ([]model.StagedFile, error)

	// Settings operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
