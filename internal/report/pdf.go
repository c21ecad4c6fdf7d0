package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders a broken-rows table as a PDF document: a summary line
// followed by one line per row showing the URL and its status label.
func BuildPDF(t *Table, urlColumn, statusColumn string) ([]byte, error) {
	urlIdx, err := t.ColumnIndex(urlColumn)
	if err != nil {
		return nil, err
	}
	statusIdx, err := t.ColumnIndex(statusColumn)
	if err != nil {
		return nil, err
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetFont("Arial", "B", 14)

	p.Cell(40, 10, "Broken image report")
	p.Ln(12)

	p.SetFont("Arial", "", 11)
	p.Cell(40, 8, fmt.Sprintf("Broken rows: %d", len(t.Rows)))
	p.Ln(10)

	for _, row := range t.Rows {
		url, status := "", ""
		if urlIdx < len(row) {
			url = row[urlIdx]
		}
		if statusIdx < len(row) {
			status = row[statusIdx]
		}
		if url == "" {
			url = "(blank)"
		}
		p.Cell(40, 7, fmt.Sprintf("%s - %s", url, status))
		p.Ln(7)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the table and writes it to path, creating the parent
// directory if needed.
func WritePDF(path string, t *Table, urlColumn, statusColumn string) error {
	data, err := BuildPDF(t, urlColumn, statusColumn)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
