package main

import (
	"fmt"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/attrsync"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/spf13/cobra"
)

type applyClient interface {
	Apply() (bool, attrsync.Stats, error)
}

// NewApplyCmd creates the apply command with explicit dependencies.
func NewApplyCmd(client applyClient) *cobra.Command {
	if client == nil {
		panic("NewApplyCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "apply",
		Short: "Re-apply the current preference",
		Long: `Re-apply the current desktop's preference to every entry of the user and
public desktop folders, even if nothing changed since the last apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hidden, stats, err := client.Apply()
			if err != nil {
				return err
			}
			state := "visible"
			if hidden {
				state = "hidden"
			}
			colors.Success(fmt.Sprintf("Icons %s (%d changed)", state, stats.Changed))
			if stats.Failed > 0 {
				colors.Warning(fmt.Sprintf("%d entries or folders could not be updated, run with --debug for details", stats.Failed))
			}
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewApplyCmd(coreClient))
}
