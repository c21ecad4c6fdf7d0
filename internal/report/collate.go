package report

import (
	"github.com/avela/imgcheck/internal/probe"
)

// Collate joins probe results back onto the source rows. Every row gets
// the status column appended; only rows whose outcome classifies as
// broken are kept, in original order. A result slot that was never
// populated is reported as a missing-result error, not dropped.
// Returns the filtered table plus total and broken row counts.
func Collate(t *Table, statusColumn string, results []probe.Outcome) (*Table, int, int) {
	header := append(append([]string{}, t.Header...), statusColumn)
	broken := &Table{Header: header}

	for i, row := range t.Rows {
		outcome := probe.ErrorOutcome("missing")
		if i < len(results) && results[i].Kind != probe.KindUnset {
			outcome = results[i]
		}

		if !outcome.Broken() {
			continue
		}

		brokenRow := append(append([]string{}, row...), outcome.Label())
		broken.Rows = append(broken.Rows, brokenRow)
	}

	return broken, len(t.Rows), len(broken.Rows)
}
