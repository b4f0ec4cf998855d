package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/collectiontools/stagehand/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
	ErrInvalidScore = errors.New("score must be between 0 and 100")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates a run before persisting it.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	if run.Threshold < 0 || run.Threshold > 100 {
		return fmt.Errorf("%w: threshold %d", ErrInvalidRun, run.Threshold)
	}
	if run.TotalCount < 0 || run.MatchedCount < 0 || run.MatchedCount > run.TotalCount {
		return fmt.Errorf("%w: counts %d/%d", ErrInvalidRun, run.MatchedCount, run.TotalCount)
	}
	return nil
}

// validateOutcome validates a reconciliation outcome before persisting it.
func validateOutcome(outcome *model.ReconciliationOutcome) error {
	if outcome == nil {
		return fmt.Errorf("%w: outcome", ErrNilParameter)
	}
	if len(outcome.All) != outcome.TotalCount {
		return fmt.Errorf("%w: %d results for %d targets", ErrInvalidRun, len(outcome.All), outcome.TotalCount)
	}
	for i, result := range outcome.All {
		if result.Score < 0 || result.Score > 100 {
			return fmt.Errorf("result at index %d: %w", i, ErrInvalidScore)
		}
	}
	return nil
}
