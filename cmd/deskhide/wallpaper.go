package main

import (
	"fmt"
	"path/filepath"

	"github.com/cristianoliveira/deskhide/cmd"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/spf13/cobra"
)

type wallpaperClient interface {
	SetWallpaper(ref, path string) (desktop.ID, error)
}

// NewWallpaperCmd creates the wallpaper command with explicit dependencies.
func NewWallpaperCmd(client wallpaperClient) *cobra.Command {
	if client == nil {
		panic("NewWallpaperCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "wallpaper <desktop> <image>",
		Short: "Set a desktop's wallpaper",
		Long: `Set the wallpaper of a virtual desktop.

The image must be a local JPEG, PNG or BMP file. The desktop is selected by
GUID, by 1-based position or by name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("wallpaper: %w", err)
			}
			id, err := client.SetWallpaper(args[0], path)
			if err != nil {
				return err
			}
			colors.Success(fmt.Sprintf("Wallpaper of %s set to %s", id, path))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewWallpaperCmd(coreClient))
}
