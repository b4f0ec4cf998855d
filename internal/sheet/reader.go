// Package sheet handles the metadata CSV side of the workflow: reading
// operator-supplied spreadsheets (which arrive in a variety of encodings),
// extracting target filename columns, validating headings, and rewriting
// derivative URL columns after a reconciliation.
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/collectiontools/stagehand/internal/common"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Table is a fully loaded CSV: one header row plus data rows. Every cell is
// kept as a string; no numeric coercion happens anywhere in this package.
type Table struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// ReadTable loads a CSV file, trying UTF-8 first and falling back to
// UTF-16 (BOM detected) and Windows-1252/Latin-1 for spreadsheets exported
// by older tools.
func ReadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	decoded, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUnreadableCSV, path)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{Path: path}, nil
	}

	return &Table{
		Path:    path,
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}

func decode(raw []byte) ([]byte, error) {
	// UTF-16 is unmistakable from its BOM; handle it before the UTF-8 check.
	if len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF)) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	if utf8.Valid(raw) {
		// Strip a UTF-8 BOM if present.
		return bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), nil
	}

	// Every byte sequence decodes under Windows-1252 (a practical superset
	// of Latin-1 for the characters that matter here), so this cannot fail.
	slog.Info("CSV is not valid UTF-8, decoding as Windows-1252")
	return charmap.Windows1252.NewDecoder().Bytes(raw)
}

// ColumnIndex returns the index of a named column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, header := range t.Headers {
		if header == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", common.ErrColumnNotFound, name)
}

// Cell returns the value at (row, col), tolerating short rows.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell writes a value at (row, col), padding short rows as needed.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// Write saves the table as UTF-8 CSV at the given path.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(t.Headers); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return f.Close()
}
