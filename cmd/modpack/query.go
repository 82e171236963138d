// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"

	"github.com/spf13/cobra"
)

var queryKeys = []string{"mod-file", "mod-elf", "compiler", "linker", "extlib-name", "preset"}

func newQueryCommand(a *app) *cobra.Command {
	var (
		platformKey string
		flavor      string
		presetStage string
	)

	queryCmd := &cobra.Command{
		Use:   "query <key>",
		Short: "Print a configuration value for build scripts",
		Long: `Print a single configuration value, for use in Makefiles.

Keys: ` + strings.Join(queryKeys, ", ") + `

Examples:
  modpack query mod-file
  modpack query preset --platform linux --flavor Release --stage build`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: queryKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			var value string
			switch args[0] {
			case "mod-file":
				value = ws.locator.ModPayload()
			case "mod-elf":
				value = ws.locator.ModElf()
			case "compiler":
				value = ws.config.ModCompiling.Compiler
			case "linker":
				value = ws.config.ModCompiling.Linker
			case "extlib-name":
				value = ws.project.ExtlibName()
			case "preset":
				pl, err := platform.Parse(platformKey)
				if err != nil {
					return &ExitError{Code: ExitConfig, Err: fmt.Errorf("--platform: %w", err)}
				}
				fl, err := parseFlavor(flavor)
				if err != nil {
					return err
				}
				st, err := parseStage(presetStage)
				if err != nil {
					return err
				}
				value = ws.config.Preset(pl, fl, st)
			default:
				return &ExitError{Code: ExitConfig, Err: fmt.Errorf("unknown key %q (expected one of %s)", args[0], strings.Join(queryKeys, ", "))}
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	queryCmd.Flags().StringVar(&platformKey, "platform", "native", "platform of the preset (windows, macos, linux or native)")
	queryCmd.Flags().StringVar(&flavor, "flavor", string(modproject.FlavorRelease), "flavor of the preset (Debug or Release)")
	queryCmd.Flags().StringVar(&presetStage, "stage", string(modproject.StageBuild), "preset stage (configure or build)")
	return queryCmd
}

func parseStage(s string) (modproject.PresetStage, error) {
	for _, st := range modproject.Stages() {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", &ExitError{Code: ExitConfig, Err: fmt.Errorf("--stage: unknown preset stage %q (expected configure or build)", s)}
}
