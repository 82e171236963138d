// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"modpack-cli/internal/assets"

	"github.com/spf13/cobra"
)

func newAssetsCommand(a *app) *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage bundled assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	assetsCmd.AddCommand(&cobra.Command{
		Use:   "extract [dir]",
		Short: "Extract assets_archive.zip when the assets directory is missing",
		Long: `Extract assets_archive.zip from the project root into dir (default "assets").

Nothing happens when dir already exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.loadProject()
			if err != nil {
				return err
			}

			dir := "assets"
			if len(args) == 1 {
				dir = args[0]
			}
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(project.Root, dir)
			}
			archive := filepath.Join(project.Root, assets.ArchiveFileName)

			extracted, err := assets.Extract(archive, dir)
			if err != nil {
				return a.ioError(err)
			}
			if extracted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Extracted %s into %s\n", successIcon, assets.ArchiveFileName, PathStyle.Render(dir))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s already exists\n", infoIcon, PathStyle.Render(dir))
			}
			return nil
		},
	})

	return assetsCmd
}
