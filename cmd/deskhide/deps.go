package main

import (
	"github.com/cristianoliveira/deskhide/internal/app"
	"github.com/cristianoliveira/deskhide/internal/errors"
	"github.com/cristianoliveira/deskhide/internal/tui"
)

// openRuntime builds the runtime from the loaded configuration.
func openRuntime() (*app.Runtime, error) {
	return app.NewFromConfig(errors.NewDefaultCLIHandler())
}

var coreClient = app.NewClient(openRuntime)

// defaultTUIClient starts the engine and attaches the terminal UI to it.
type defaultTUIClient struct{}

func (defaultTUIClient) RunTUI() error {
	handler := errors.NewTUIHandler(nil)
	rt, err := app.NewFromConfig(handler)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.Start(); err != nil {
		return err
	}
	return tui.Run(tui.NewRuntimeBackend(rt), handler)
}
