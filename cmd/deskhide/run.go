package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/spf13/cobra"
)

type runClient interface {
	Run(ctx context.Context) error
}

// NewRunCmd creates the run command with explicit dependencies.
func NewRunCmd(client runClient) *cobra.Command {
	if client == nil {
		panic("NewRunCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "run",
		Short: "Run the engine in the foreground",
		Long: `Run the desktop-switch engine without a UI.

The current desktop's preference is applied once at startup. Afterwards the
desktop folders are updated whenever the active virtual desktop changes to one
with a different preference. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			colors.Info("watching virtual desktops, press Ctrl+C to stop")
			return client.Run(ctx)
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewRunCmd(coreClient))
}
