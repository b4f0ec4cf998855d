package match

import (
	"io/fs"
	"log/slog"
	"path/filepath"
)

// Scan recursively enumerates every file under root. Directories themselves
// are excluded. The walk is lexical, so the order is deterministic for a
// given tree; first-seen tie-breaking depends on that.
//
// A missing or unreadable root is not an error: it is logged and yields an
// empty candidate list. Unreadable subtrees are skipped the same way.
func Scan(root string) []string {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Debug("Skipping unreadable path during scan", "path", path, "error", walkErr)
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		slog.Warn("Search directory could not be scanned", "root", root, "error", err)
		return nil
	}

	return files
}
