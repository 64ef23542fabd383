package main

import (
	"os"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/errors"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the command tree and maps its error to an exit code.
func run(execute func() error) int {
	colors.TraceStep("cli", "run", "started", nil, nil)
	if err := execute(); err != nil {
		colors.TraceStep("cli", "run", "failed", err, nil)
		errors.Report(errors.NewDefaultCLIHandler(), err)
		return 1
	}
	colors.TraceStep("cli", "run", "completed", nil, nil)
	return 0
}
