package main

import (
	"context"
	"fmt"

	"github.com/collectiontools/stagehand/internal/config"
	"github.com/collectiontools/stagehand/internal/model"
	"github.com/collectiontools/stagehand/internal/storage"

	"github.com/spf13/viper"
)

// openStorage opens (and migrates) the stagehand database.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// resolveScope returns the search directories for a run: the --dir
// overrides when given, otherwise the persisted scope. Duplicates are
// dropped while preserving insertion order.
func resolveScope(ctx context.Context, store *storage.SQLiteStorage, overrides []string) ([]string, error) {
	scope := model.NewSearchScope()

	if len(overrides) > 0 {
		for _, dir := range overrides {
			scope.Add(config.ExpandPath(dir))
		}
		return scope.Dirs(), nil
	}

	dirs, err := store.ListSearchDirs(ctx)
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		scope.Add(config.ExpandPath(dir.Path))
	}
	return scope.Dirs(), nil
}
