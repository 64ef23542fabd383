// Package cmd holds the root command shared by the deskhide subcommands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/config"
	"github.com/cristianoliveira/deskhide/internal/logging"
	"github.com/cristianoliveira/deskhide/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "deskhide",
	Short:         "Hide desktop icons per virtual desktop.",
	Long:          `Remember which virtual desktops should show desktop icons and keep the desktop folders in line whenever the active desktop changes.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug(fmt.Sprintf("logger shutdown: %v", err))
		}
	},
}

// setup loads configuration and initializes console and file logging.
func setup(cmd *cobra.Command) error {
	config.Load()
	debug := config.GetBool("debug", false)
	if cmd.Flags().Changed("debug") {
		debug = debugFlag
	}
	quiet := config.GetBool("quiet", false)
	if cmd.Flags().Changed("quiet") {
		quiet = quietFlag
	}
	colors.SetDebug(debug)
	colors.SetQuiet(quiet)
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name())
	return nil
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only print warnings and errors")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})
}

// commandOrder is the order commands appear in the help text.
var commandOrder = []string{
	"run",
	"tui",
	"toggle",
	"hide",
	"show",
	"status",
	"list",
	"apply",
	"wallpaper",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-20s %s", found.Use, found.Short))
	}

	fmt.Fprintf(cmd.OutOrStdout(), `deskhide %s

%s

USAGE:
    deskhide [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    --quiet         Only print warnings and errors
    -h, --help      Show help message
`, version.String(), cmd.Short, strings.Join(cmdLines, "\n"))
}
