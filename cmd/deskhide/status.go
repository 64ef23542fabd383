package main

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/app"
	"github.com/spf13/cobra"
)

type statusClient interface {
	Status() (app.Status, error)
}

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client statusClient) *cobra.Command {
	if client == nil {
		panic("NewStatusCmd: client dependency cannot be nil")
	}

	var formatFlag string

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current desktop preference",
		Long: `Show the current virtual desktop and whether its icons are hidden.

FORMATS:
    text         Multi-line summary (default)
    indicator    The toggle label only ("Hide Icons" or "Show Icons")
    short        "hidden" or "visible"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := client.Status()
			if err != nil {
				return err
			}
			return writeStatus(cmd.OutOrStdout(), st, formatFlag)
		},
	}

	statusCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, indicator or short")
	return statusCmd
}

func writeStatus(w io.Writer, st app.Status, format string) error {
	state := "visible"
	if st.Hidden {
		state = "hidden"
	}
	switch format {
	case "", "text":
		_, err := fmt.Fprintf(w, "Desktop:  %s (%s)\nIcons:    %s\nToggle:   %s\nDesktops: %d\n",
			st.Name, st.ID, state, st.Indicator, st.Desktops)
		return err
	case "indicator":
		_, err := fmt.Fprintln(w, st.Indicator)
		return err
	case "short":
		_, err := fmt.Fprintln(w, state)
		return err
	default:
		return fmt.Errorf("status: unknown format %q", format)
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewStatusCmd(coreClient))
}
