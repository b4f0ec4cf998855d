// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DefaultDatabasePath returns the default location of the stagehand database.
func DefaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "stagehand", "stagehand.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "stagehand.db")
	}
	return filepath.Join(home, ".local", "share", "stagehand", "stagehand.db")
}

// DefaultStagingRoot returns the default base directory for staging trees.
func DefaultStagingRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "staging")
	}
	return filepath.Join(home, ".local", "share", "stagehand", "staging")
}
