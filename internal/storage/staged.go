package storage

import (
	"context"
	"fmt"

	"github.com/collectiontools/stagehand/internal/model"
)

// SaveStagedFiles records the files linked into a staging tree.
func (s *SQLiteStorage) SaveStagedFiles(ctx context.Context, files []model.StagedFile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO staged_files (run_id, target, source_path, staged_path, sanitized_name)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare staged file insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, file := range files {
		var runID any
		if file.RunID != 0 {
			runID = file.RunID
		}
		if _, err := stmt.ExecContext(ctx, runID, file.Target, file.SourcePath,
			file.StagedPath, file.SanitizedName); err != nil {
			return fmt.Errorf("failed to save staged file %q: %w", file.SanitizedName, err)
		}
	}

	return tx.Commit()
}

// ListStagedFiles returns the staged files for a run, in staging order.
func (s *SQLiteStorage) ListStagedFiles(ctx context.Context, runID int64) ([]model.StagedFile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(run_id, 0), target, source_path, staged_path, sanitized_name, staged_at
		 FROM staged_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []model.StagedFile
	for rows.Next() {
		var file model.StagedFile
		if err := rows.Scan(&file.ID, &file.RunID, &file.Target, &file.SourcePath,
			&file.StagedPath, &file.SanitizedName, &file.StagedAt); err != nil {
			return nil, fmt.Errorf("failed to scan staged file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}
