package main

import (
	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/spf13/cobra"
)

type toggleClient interface {
	Toggle() (bool, error)
}

// NewToggleCmd creates the toggle command with explicit dependencies.
func NewToggleCmd(client toggleClient) *cobra.Command {
	if client == nil {
		panic("NewToggleCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle icons on the current desktop",
		Long: `Toggle icons on the current virtual desktop.

The new preference is saved and applied to the user and public desktop
folders. If the desktop folders cannot be located the previous preference
is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hidden, err := client.Toggle()
			if err != nil {
				return err
			}
			if hidden {
				colors.Success("Icons hidden")
			} else {
				colors.Success("Icons visible")
			}
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewToggleCmd(coreClient))
}
