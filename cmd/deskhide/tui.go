package main

import (
	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/spf13/cobra"
)

type tuiClient interface {
	RunTUI() error
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client tuiClient) *cobra.Command {
	if client == nil {
		panic("NewTUICmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive desktop list",
		Long: `Open the interactive desktop list.

KEYS:
    up/k, down/j    Move the selection
    enter           Switch to the selected desktop
    h               Toggle icons for the current desktop
    n               Create a desktop
    x               Remove the current desktop
    q               Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.RunTUI()
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(defaultTUIClient{}))
}
