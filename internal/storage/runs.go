package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/model"
)

// SaveRun persists a reconciliation run together with its per-target
// results, atomically. The returned id identifies the run for later
// staging and CSV-rewrite steps.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run, outcome *model.ReconciliationOutcome) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRun(run); err != nil {
		return 0, err
	}
	if err := validateOutcome(outcome); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, completed_at, threshold, total_count, matched_count, csv_path, column_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.CompletedAt, run.Threshold, run.TotalCount, run.MatchedCount,
		run.CSVPath, run.ColumnName)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_matches (run_id, position, target, matched_path, score, matched)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare match insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, match := range outcome.All {
		var matchedPath any
		if match.Path != "" {
			matchedPath = match.Path
		}
		matched := match.Meets(run.Threshold)
		if _, err := stmt.ExecContext(ctx, runID, i, match.Target, matchedPath, match.Score, matched); err != nil {
			return 0, fmt.Errorf("failed to save match for %q: %w", match.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = runID
	return runID, nil
}

// GetLatestRun returns the most recently completed run.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var run model.Run
	var csvPath, columnName sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, threshold, total_count, matched_count, csv_path, column_name
		 FROM runs ORDER BY id DESC LIMIT 1`).
		Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.Threshold,
			&run.TotalCount, &run.MatchedCount, &csvPath, &columnName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoRun
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.CSVPath = csvPath.String
	run.ColumnName = columnName.String
	return &run, nil
}

// GetRunOutcome rebuilds the full outcome of a run from its stored matches.
func (s *SQLiteStorage) GetRunOutcome(ctx context.Context, runID int64) (*model.ReconciliationOutcome, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT target, matched_path, score, matched FROM run_matches
		 WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	outcome := &model.ReconciliationOutcome{}
	for rows.Next() {
		var result model.MatchResult
		var path sql.NullString
		var matched bool
		if err := rows.Scan(&result.Target, &path, &result.Score, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan run match: %w", err)
		}
		result.Path = path.String

		outcome.All = append(outcome.All, result)
		outcome.TotalCount++
		if matched {
			outcome.Matched = append(outcome.Matched, result)
			outcome.MatchedCount++
		} else {
			outcome.Unmatched = append(outcome.Unmatched, result)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if outcome.TotalCount == 0 {
		// Distinguish "run with no targets" from "no such run".
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs WHERE id = ?`, runID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check run existence: %w", err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("%w: run %d", common.ErrNotFound, runID)
		}
	}

	return outcome, nil
}
