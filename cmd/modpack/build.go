// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"modpack-cli/internal/build"
	"modpack-cli/pkg/modproject"

	"github.com/spf13/cobra"
)

func newBuildCommand(a *app) *cobra.Command {
	var flavor string

	buildCmd := &cobra.Command{
		Use:   "build [KEY=VALUE...]",
		Short: "Build the mod and its native libraries",
		Long: `Run the project's build tool in the project root.

The compiler, linker and native-library presets from user_build_config.json
are passed as KEY=VALUE parameters; parameters given on the command line
override them.

Examples:
  modpack build
  modpack build --flavor Debug
  modpack --build-tool "make -j8" build MOD_COMPILER=clang-18`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := parseFlavor(flavor)
			if err != nil {
				return err
			}
			extra, err := build.ParseParams(args)
			if err != nil {
				return &ExitError{Code: ExitConfig, Err: err}
			}

			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			params := build.Merge(build.Overrides(ws.config, fl), extra)
			if err := a.invoker(ws, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(cmd.Context(), params); err != nil {
				return a.buildError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Build finished (%s)\n", successIcon, fl)
			return nil
		},
	}

	buildCmd.Flags().StringVar(&flavor, "flavor", string(modproject.FlavorRelease), "build flavor (Debug or Release)")
	return buildCmd
}
