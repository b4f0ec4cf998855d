package sheet

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/collectiontools/stagehand/internal/model"
)

// URL columns populated by the rewrite step. Columns absent from the CSV
// are skipped rather than added.
const (
	ObjectColumn = "object_location"
	SmallColumn  = "image_small"
	ThumbColumn  = "image_thumb"
)

// RewriteOptions controls how derivative URLs are built.
type RewriteOptions struct {
	// BaseURL is the blob-store root, e.g. https://example.blob.core.windows.net.
	BaseURL string
	// Collection, when set, becomes a path segment between the container
	// prefix and the filename.
	Collection string
}

// RewriteURLs fills the object/small/thumb URL columns for each staged
// file, matching CSV rows by the target column value. Existing URLs are
// preserved unless they are empty or still reference the target filename,
// so processing a subset of files never clears unrelated rows.
// It returns the number of cells updated.
func RewriteURLs(table *Table, column string, staged []model.StagedFile, opts RewriteOptions) (int, error) {
	targetCol, err := table.ColumnIndex(column)
	if err != nil {
		return 0, err
	}

	urlCols := map[string]int{}
	for _, name := range []string{ObjectColumn, SmallColumn, ThumbColumn} {
		if col, err := table.ColumnIndex(name); err == nil {
			urlCols[name] = col
		} else {
			slog.Warn("URL column missing from CSV, skipping", "column", name)
		}
	}

	updates := 0
	for _, file := range staged {
		row, found := findRow(table, targetCol, file.Target)
		if !found {
			slog.Warn("No CSV row for staged file", "target", file.Target)
			continue
		}

		stem := strings.TrimSuffix(file.SanitizedName, path.Ext(file.SanitizedName))
		urls := map[string]string{
			ObjectColumn: blobURL(opts, "objs", file.SanitizedName),
			SmallColumn:  blobURL(opts, "smalls", stem+"_SMALL.jpg"),
			ThumbColumn:  blobURL(opts, "thumbs", stem+"_TN.jpg"),
		}

		for name, col := range urlCols {
			existing := strings.TrimSpace(table.Cell(row, col))
			if existing != "" && !strings.Contains(existing, file.Target) {
				slog.Info("Preserving existing URL", "column", name, "row", row, "url", existing)
				continue
			}
			table.SetCell(row, col, urls[name])
			updates++
		}
	}

	return updates, nil
}

func findRow(table *Table, col int, value string) (int, bool) {
	for row := range table.Rows {
		if table.Cell(row, col) == value {
			return row, true
		}
	}
	return 0, false
}

func blobURL(opts RewriteOptions, container, filename string) string {
	base := strings.TrimRight(opts.BaseURL, "/")
	if opts.Collection != "" {
		return fmt.Sprintf("%s/%s/%s/%s", base, container, opts.Collection, filename)
	}
	return fmt.Sprintf("%s/%s/%s", base, container, filename)
}
