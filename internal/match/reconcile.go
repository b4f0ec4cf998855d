package match

import (
	"context"
	"log/slog"

	"github.com/collectiontools/stagehand/internal/model"
	"github.com/collectiontools/stagehand/internal/service"
)

// DefaultThreshold is the acceptance threshold used by every current call
// site. Callers may pass any 0-100 value to Reconcile instead.
const DefaultThreshold = 90

// Reconcile matches every target against every directory in dirs, in
// insertion order, and partitions the merged results by threshold.
//
// For each target the highest score across directories is retained, with
// the earliest directory winning exact ties. Every directory is scanned
// for every target, even after a perfect match in an earlier directory.
// Duplicate targets are carried independently, one result per input
// position. Cancellation aborts the whole reconciliation with ctx.Err()
// and no partial outcome.
//
// onProgress, when non-nil, receives a single monotonic 0-1 stream: each
// directory's batch fraction is rescaled into its share of the whole run.
func Reconcile(ctx context.Context, dirs, targets []string, threshold int, onProgress service.ProgressFunc) (*model.ReconciliationOutcome, error) {
	best := make([]model.MatchResult, len(targets))
	for i, target := range targets {
		best[i] = model.MatchResult{Target: target}
	}

	dirCount := len(dirs)
	for di, dir := range dirs {
		slog.Info("Scanning search directory", "directory", dir, "targets", len(targets))

		var scaled service.ProgressFunc
		if onProgress != nil {
			base := float64(di)
			scaled = func(fraction float64) {
				onProgress((base + fraction) / float64(dirCount))
			}
		}

		results, err := MatchBatch(ctx, dir, targets, scaled)
		if err != nil {
			return nil, err
		}

		for i, result := range results {
			if result.Score > best[i].Score {
				best[i] = result
			}
		}
	}

	outcome := &model.ReconciliationOutcome{
		All:        best,
		TotalCount: len(targets),
	}
	for _, result := range best {
		if result.Meets(threshold) {
			outcome.Matched = append(outcome.Matched, result)
			outcome.MatchedCount++
		} else {
			outcome.Unmatched = append(outcome.Unmatched, result)
		}
	}

	slog.Info("Reconciliation complete",
		"directories", dirCount,
		"matched", outcome.MatchedCount,
		"total", outcome.TotalCount)

	return outcome, nil
}
