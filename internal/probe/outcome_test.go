package probe

import "testing"

func TestBrokenStatusCodes(t *testing.T) {
	for code := 200; code <= 599; code++ {
		got := StatusOutcome(code).Broken()
		want := code >= 400
		if got != want {
			t.Errorf("StatusOutcome(%d).Broken() = %v, want %v", code, got, want)
		}
	}
}

func TestBrokenBoundaries(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{399, false},
		{400, true},
		{404, true},
	}

	for _, tt := range tests {
		if got := StatusOutcome(tt.code).Broken(); got != tt.want {
			t.Errorf("StatusOutcome(%d).Broken() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestBrokenSentinels(t *testing.T) {
	if !EmptyOutcome().Broken() {
		t.Error("empty sentinel must classify as broken")
	}
	if !ErrorOutcome("timeout").Broken() {
		t.Error("error sentinel must classify as broken")
	}
	if !(Outcome{}).Broken() {
		t.Error("unset outcome must classify as broken")
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"status", StatusOutcome(404), "404"},
		{"ok status", StatusOutcome(200), "200"},
		{"empty", EmptyOutcome(), "empty"},
		{"error", ErrorOutcome("dns"), "error: dns"},
		{"unset", Outcome{}, "error: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
