package staging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/collectiontools/stagehand/internal/model"
)

// Subdirectories of a staging tree. OBJS holds the staged source files;
// TN and SMALL are created empty for the derivative step.
const (
	ObjsDir  = "OBJS"
	ThumbDir = "TN"
	SmallDir = "SMALL"
)

// Tree is one session's staging directory.
type Tree struct {
	Root string
	Objs string
}

// NewTree creates a fresh staging tree under base, named with a timestamp
// so concurrent sessions never collide.
func NewTree(base string) (*Tree, error) {
	root := filepath.Join(base,
		fmt.Sprintf("stage_%s_%04x", time.Now().Format("20060102_150405"), time.Now().UnixNano()&0xffff))

	for _, sub := range []string{ObjsDir, ThumbDir, SmallDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
	}

	slog.Info("Created staging tree", "root", root)
	return &Tree{
		Root: root,
		Objs: filepath.Join(root, ObjsDir),
	}, nil
}

// Stage links every matched result into the tree's OBJS directory under a
// sanitized name, falling back to a copy where symlinks are unavailable.
// Name collisions get numeric suffixes. Per-file failures are logged and
// skipped; staging never fails the whole batch.
func (t *Tree) Stage(runID int64, results []model.MatchResult) []model.StagedFile {
	var staged []model.StagedFile

	for _, result := range results {
		if !result.Found() {
			continue
		}

		source, err := filepath.Abs(result.Path)
		if err != nil {
			slog.Error("Failed to resolve matched path", "path", result.Path, "error", err)
			continue
		}
		if _, err := os.Stat(source); err != nil {
			slog.Warn("Skipping missing source file", "path", source, "error", err)
			continue
		}

		name := SanitizeFilename(filepath.Base(source))
		dest := filepath.Join(t.Objs, name)

		ext := filepath.Ext(name)
		stem := name[:len(name)-len(ext)]
		for counter := 1; ; counter++ {
			if _, err := os.Lstat(dest); os.IsNotExist(err) {
				break
			}
			name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
			dest = filepath.Join(t.Objs, name)
		}

		if err := link(source, dest); err != nil {
			slog.Error("Failed to stage file", "source", source, "error", err)
			continue
		}

		staged = append(staged, model.StagedFile{
			RunID:         runID,
			Target:        result.Target,
			SourcePath:    source,
			StagedPath:    dest,
			SanitizedName: name,
		})
		slog.Info("Staged file", "name", name, "source", source)
	}

	return staged
}

func link(source, dest string) error {
	symErr := os.Symlink(source, dest)
	if symErr == nil {
		return nil
	}
	slog.Debug("Symlink failed, copying instead", "source", source, "error", symErr)

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create staged file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy file: %w", err)
	}
	return out.Close()
}
