package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/session"
	"github.com/spf13/cobra"
)

type listClient interface {
	List() ([]session.DesktopView, error)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var idsOnly bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List virtual desktops",
		Long: `List virtual desktops in display order.

The current desktop is marked with "*". Desktops with hidden icons show
"Icons hidden".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := client.List()
			if err != nil {
				return err
			}
			if idsOnly {
				for _, v := range views {
					fmt.Fprintln(cmd.OutOrStdout(), v.ID)
				}
				return nil
			}
			writeDesktopTable(cmd.OutOrStdout(), views)
			return nil
		},
	}

	listCmd.Flags().BoolVar(&idsOnly, "ids", false, "Print desktop GUIDs only")
	return listCmd
}

func writeDesktopTable(w io.Writer, views []session.DesktopView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No virtual desktops found")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "#", "NAME", "ID", "STATUS")
	for i, v := range views {
		marker := ""
		if v.IsCurrent {
			marker = "*"
		}
		t.Row(marker, strconv.Itoa(i+1), v.Name, v.ID.String(), v.Message)
	}
	fmt.Fprintln(w, t.String())
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(coreClient))
}
