package tui

import (
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func terminal(is bool) func() bool {
	return func() bool { return is }
}

func TestDetectMode_Overrides(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		tty  bool
		want Mode
	}{
		{"terminal", nil, true, ModeStyled},
		{"no terminal", nil, false, ModePlain},
		{"non-interactive flag", map[string]string{"SPECPREP_NON_INTERACTIVE": "1"}, true, ModePlain},
		{"non-interactive wrong value", map[string]string{"SPECPREP_NON_INTERACTIVE": "true"}, true, ModeStyled},
		{"CI", map[string]string{"CI": "true"}, true, ModePlain},
		{"NO_COLOR", map[string]string{"NO_COLOR": "1"}, true, ModePlain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectMode(env(tt.vars), terminal(tt.tty)); got != tt.want {
				t.Errorf("detectMode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetectMode_NoTerminalInTests(t *testing.T) {
	// In test context stdout is not a terminal
	t.Setenv("SPECPREP_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(); got != ModePlain {
		t.Errorf("DetectMode() = %d, want ModePlain (no terminal in test)", got)
	}
}
