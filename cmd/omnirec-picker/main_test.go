package main

import (
	"testing"

	"github.com/omnirec/picker/consent"
)

type stubProvider struct {
	decision consent.Decision
	desc     string
}

func (s *stubProvider) Ask(description string) consent.Decision {
	s.desc = description
	return s.decision
}

func TestRunDryRunDecisions(t *testing.T) {
	tests := []struct {
		name     string
		decision consent.Decision
		want     int
	}{
		{"always allow", consent.AlwaysAllow, 0},
		{"allow once", consent.AllowOnce, 0},
		{"denied", consent.Denied, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{decision: tt.decision}
			if got := runDryRun(p, "monitor", "DP-1"); got != tt.want {
				t.Errorf("runDryRun() = %d, want %d", got, tt.want)
			}
			if p.desc != "Display: DP-1" {
				t.Errorf("unexpected description: %q", p.desc)
			}
		})
	}
}

func TestRunDryRunWindowDescription(t *testing.T) {
	p := &stubProvider{decision: consent.AllowOnce}
	if got := runDryRun(p, "window", "Firefox"); got != 0 {
		t.Fatalf("runDryRun() = %d, want 0", got)
	}
	if p.desc != "Window: Firefox" {
		t.Errorf("unexpected description: %q", p.desc)
	}
}
