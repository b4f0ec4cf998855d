package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/collectiontools/stagehand/internal/common"
	"github.com/collectiontools/stagehand/internal/model"

	"github.com/mattn/go-sqlite3"
)

// AddSearchDir appends a directory to the persisted search scope. The path
// must not already be present; insertion order is preserved via position.
func (s *SQLiteStorage) AddSearchDir(ctx context.Context, path string) (*model.SearchDirectory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	var position int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM search_dirs`).Scan(&position)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scope position: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO search_dirs (path, position) VALUES (?, ?)`, path, position)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicateEntry, path)
		}
		return nil, fmt.Errorf("failed to add search directory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get search directory id: %w", err)
	}

	return s.getSearchDir(ctx, id)
}

func (s *SQLiteStorage) getSearchDir(ctx context.Context, id int64) (*model.SearchDirectory, error) {
	var dir model.SearchDirectory
	err := s.db.QueryRowContext(ctx,
		`SELECT id, path, position, added_at FROM search_dirs WHERE id = ?`, id).
		Scan(&dir.ID, &dir.Path, &dir.Position, &dir.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get search directory: %w", err)
	}
	return &dir, nil
}

// ListSearchDirs returns the search scope in insertion order.
func (s *SQLiteStorage) ListSearchDirs(ctx context.Context) ([]model.SearchDirectory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, position, added_at FROM search_dirs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list search directories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var dirs []model.SearchDirectory
	for rows.Next() {
		var dir model.SearchDirectory
		if err := rows.Scan(&dir.ID, &dir.Path, &dir.Position, &dir.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search directory: %w", err)
		}
		dirs = append(dirs, dir)
	}

	return dirs, rows.Err()
}

// RemoveSearchDir deletes a directory from the scope.
func (s *SQLiteStorage) RemoveSearchDir(ctx context.Context, path string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(path, "path"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM search_dirs WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to remove search directory: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", common.ErrNotFound, path)
	}
	return nil
}

// ClearSearchDirs removes every directory from the scope.
func (s *SQLiteStorage) ClearSearchDirs(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM search_dirs`); err != nil {
		return fmt.Errorf("failed to clear search directories: %w", err)
	}
	return nil
}
