package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/specprep/specprep/internal/cli"
	"github.com/specprep/specprep/pkg/specprep"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(specprep.ExitPanic)
		}
	}()

	if os.Getenv("SPECPREP_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(specprep.ExitCodeForError(err))
	}
}
