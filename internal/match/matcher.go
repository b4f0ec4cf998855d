package match

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/collectiontools/stagehand/internal/model"
	"github.com/collectiontools/stagehand/internal/service"
)

// MatchOne scans root and returns the best-scoring candidate for target.
// Comparison is case-insensitive on the candidate's base name. Ties keep
// the first candidate seen, and a perfect score stops the search early.
// Zero candidates (including a failed scan) yield an empty result with
// score 0; matching never returns an error.
func MatchOne(root, target string) model.MatchResult {
	result := model.MatchResult{Target: target}
	want := strings.ToLower(target)

	for _, path := range Scan(root) {
		score := Score(strings.ToLower(filepath.Base(path)), want)
		if score > result.Score {
			result.Score = score
			result.Path = path
			if score == 100 {
				break
			}
		}
	}

	return result
}

// MatchBatch matches every target against root, strictly sequentially and
// in input order. Cancellation is polled once per target, before that
// target's scan begins; a match already in progress always runs to
// completion. On cancellation the batch returns ctx.Err() and no partial
// results.
//
// onProgress, when non-nil, is invoked with (i+1)/N after each target. An
// empty target list reports 0 then 1.0 without iterating.
func MatchBatch(ctx context.Context, root string, targets []string, onProgress service.ProgressFunc) ([]model.MatchResult, error) {
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	total := len(targets)
	if total == 0 {
		onProgress(0)
		onProgress(1.0)
		return []model.MatchResult{}, nil
	}

	results := make([]model.MatchResult, 0, total)
	for i, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		results = append(results, MatchOne(root, target))
		onProgress(float64(i+1) / float64(total))
	}

	return results, nil
}
