package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Table is an in-memory CSV file: one header row plus data rows, in
// original file order.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV loads a CSV file with a header row.
func ReadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV %s is empty, expected a header row", path)
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// ColumnIndex returns the position of the named column, or an error
// naming the missing column and listing the columns that exist.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Header {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found, available columns: %v", name, t.Header)
}

// Column returns the values of the named column, one per row in original
// order. Rows too short to contain the column yield an empty string.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}

// WriteCSV writes the table to path, creating the parent directory if
// it does not exist.
func WriteCSV(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	writer.Flush()
	return writer.Error()
}
