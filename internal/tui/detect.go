// Package tui renders terminal output for humans: it detects whether stdout
// is an interactive terminal and styles the run summary accordingly.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how output should be rendered.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is watching the terminal.
	ModeStyled
)

// DetectMode determines whether output should be styled.
//
// Returns ModePlain if:
//   - SPECPREP_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdout is not a terminal
//
// Returns ModeStyled otherwise.
func DetectMode() Mode {
	return detectMode(os.Getenv, func() bool { return term.IsTerminal(int(os.Stdout.Fd())) })
}

func detectMode(getenv func(string) string, stdoutIsTerminal func() bool) Mode {
	if getenv("SPECPREP_NON_INTERACTIVE") == "1" {
		return ModePlain
	}
	if getenv("CI") != "" {
		return ModePlain
	}
	if getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !stdoutIsTerminal() {
		return ModePlain
	}
	return ModeStyled
}
