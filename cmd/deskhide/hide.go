package main

import (
	"fmt"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/spf13/cobra"
)

type visibilityClient interface {
	SetHidden(ref string, hidden bool) (desktop.ID, error)
}

// NewHideCmd creates the hide command with explicit dependencies.
func NewHideCmd(client visibilityClient) *cobra.Command {
	return newVisibilityCmd(client, true)
}

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client visibilityClient) *cobra.Command {
	return newVisibilityCmd(client, false)
}

func newVisibilityCmd(client visibilityClient, hidden bool) *cobra.Command {
	name, verb, result := "show", "Show", "visible"
	if hidden {
		name, verb, result = "hide", "Hide", "hidden"
	}
	if client == nil {
		panic(fmt.Sprintf("New%sCmd: client dependency cannot be nil", verb))
	}

	return &cobra.Command{
		Use:   name + " [desktop]",
		Short: verb + " icons on a desktop",
		Long: fmt.Sprintf(`%s icons on a virtual desktop.

The desktop is selected by GUID, by 1-based position as shown by "deskhide
list", or by name. Without an argument the current desktop is used and the
change is applied immediately.`, verb),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			id, err := client.SetHidden(ref, hidden)
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Icons %s on %s", result, id))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewHideCmd(coreClient))
	cmd.RootCmd.AddCommand(NewShowCmd(coreClient))
}
