package report

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/avela/imgcheck/internal/dispatch"
	"github.com/avela/imgcheck/internal/probe"
)

func TestCollateKeepsOnlyBrokenRows(t *testing.T) {
	table := &Table{
		Header: []string{"SKU", "IMAGE_URLS"},
		Rows: [][]string{
			{"sku-1", "http://a.test/ok.png"},
			{"sku-2", "http://a.test/missing.png"},
			{"sku-3", ""},
		},
	}
	results := []probe.Outcome{
		probe.StatusOutcome(200),
		probe.StatusOutcome(404),
		probe.EmptyOutcome(),
	}

	broken, checked, brokenCount := Collate(table, "IMAGE_STATUS", results)

	if checked != 3 {
		t.Errorf("checked = %d, want 3", checked)
	}
	if brokenCount != 2 {
		t.Errorf("broken = %d, want 2", brokenCount)
	}

	wantHeader := []string{"SKU", "IMAGE_URLS", "IMAGE_STATUS"}
	if !reflect.DeepEqual(broken.Header, wantHeader) {
		t.Errorf("header = %v, want %v", broken.Header, wantHeader)
	}

	wantRows := [][]string{
		{"sku-2", "http://a.test/missing.png", "404"},
		{"sku-3", "", "empty"},
	}
	if !reflect.DeepEqual(broken.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", broken.Rows, wantRows)
	}
}

func TestCollateDoesNotMutateSource(t *testing.T) {
	table := &Table{
		Header: []string{"IMAGE_URLS"},
		Rows:   [][]string{{"http://a.test/missing.png"}},
	}
	results := []probe.Outcome{probe.StatusOutcome(404)}

	Collate(table, "IMAGE_STATUS", results)

	if len(table.Header) != 1 || len(table.Rows[0]) != 1 {
		t.Errorf("source table was mutated: %+v", table)
	}
}

func TestCollateReportsMissingSlots(t *testing.T) {
	table := &Table{
		Header: []string{"IMAGE_URLS"},
		Rows:   [][]string{{"http://a.test/1.png"}, {"http://a.test/2.png"}},
	}

	// Slot 1 was never written; slot count is short on top of that.
	results := []probe.Outcome{{}}

	broken, checked, brokenCount := Collate(table, "IMAGE_STATUS", results)

	if checked != 2 || brokenCount != 2 {
		t.Fatalf("checked/broken = %d/%d, want 2/2", checked, brokenCount)
	}
	for _, row := range broken.Rows {
		if row[len(row)-1] != "error: missing" {
			t.Errorf("expected missing-result label, got %q", row[len(row)-1])
		}
	}
}

// TestCheckPipelineEndToEnd drives the probe, dispatcher, and collator
// together against a local server: one healthy URL, one 404, one blank.
func TestCheckPipelineEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	table := &Table{
		Header: []string{"SKU", "IMAGE_URLS"},
		Rows: [][]string{
			{"sku-1", srv.URL + "/ok.png"},
			{"sku-2", srv.URL + "/missing.png"},
			{"sku-3", ""},
		},
	}

	urls, err := table.Column("IMAGE_URLS")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}

	prober := probe.New(5*time.Second, probe.DefaultRetries)
	results := dispatch.New(prober, 24).Run(urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}

	broken, checked, brokenCount := Collate(table, "IMAGE_STATUS", results)

	if checked != 3 || brokenCount != 2 {
		t.Fatalf("checked/broken = %d/%d, want 3/2", checked, brokenCount)
	}

	wantRows := [][]string{
		{"sku-2", srv.URL + "/missing.png", "404"},
		{"sku-3", "", "empty"},
	}
	if !reflect.DeepEqual(broken.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", broken.Rows, wantRows)
	}
}
