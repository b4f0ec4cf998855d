package sheet

import (
	"log/slog"
	"strings"
)

// ExtractColumn returns the non-empty, whitespace-trimmed values of one
// column, in row order. These become the target filenames of a
// reconciliation run; duplicates are kept as-is.
func ExtractColumn(path, column string) ([]string, error) {
	table, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	col, err := table.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	var values []string
	for row := range table.Rows {
		value := strings.TrimSpace(table.Cell(row, col))
		if value != "" {
			values = append(values, value)
		}
	}

	slog.Info("Extracted column values",
		"csv", path,
		"column", column,
		"count", len(values))

	return values, nil
}
