// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"modpack-cli/internal/config"
	"modpack-cli/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modpack config` command tree.
func newConfigCommand(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the user build configuration",
		Long: `Manage user_build_config.json, the local compiler and preset choices.

The file lives next to mod.toml and is created with defaults on first use.
Values can be overridden with environment variables, e.g.
MODPACK_MOD_COMPILING_COMPILER=clang-18.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			data, err := config.Marshal(ws.config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("User Build Configuration"))
			fmt.Fprintf(out, "%s: %s\n\n", PathStyle.Render("Config file"), a.configPath(ws))
			fmt.Fprintln(out, string(data))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the configuration file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.loadProject()
			if err != nil {
				return err
			}

			loaded, err := a.config.Load(cmd.Context(), project, config.LoadOptions{ConfigFilePath: a.configFile})
			if err != nil {
				return a.fail(ExitConfig, issue.UserConfigInvalidId, err)
			}

			out := cmd.OutOrStdout()
			if loaded.Created {
				fmt.Fprintf(out, "%s Created %s\n", successIcon, PathStyle.Render(loaded.Path))
			} else {
				fmt.Fprintf(out, "%s %s already exists\n", infoIcon, PathStyle.Render(loaded.Path))
			}
			return nil
		},
	})

	return cfgCmd
}

func (a *app) configPath(ws *workspace) string {
	if a.configFile != "" {
		return a.configFile
	}
	return config.Path(ws.project)
}
