// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"modpack-cli/internal/build"

	"github.com/spf13/cobra"
)

func newCleanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build outputs",
		Long:  `Remove the build directory and the N64Recomp build tree.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			removed, err := build.Clean(ws.project.Root, ws.locator.BuildDir)
			for _, dir := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", successIcon, PathStyle.Render(dir))
			}
			if err != nil {
				return a.ioError(err)
			}
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Nothing to clean"))
			}
			return nil
		},
	}
}
