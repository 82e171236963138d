// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"modpack-cli/internal/artifact"
	"modpack-cli/internal/stage"
	"modpack-cli/internal/watch"
	"modpack-cli/pkg/modproject"

	"github.com/spf13/cobra"
)

func newRuntimeCommand(a *app) *cobra.Command {
	var (
		native   bool
		flavor   string
		watching bool
		debounce time.Duration
	)

	runtimeCmd := &cobra.Command{
		Use:   "runtime",
		Short: "Copy build outputs into the local runtime for testing",
		Long: `Copy the mod payload and native libraries into runtime/mods.

Without --native the Windows, macOS and Linux builds are copied; with
--native only the library built for this machine is. Files that were not
built are skipped. runtime/portable.txt is created on first use.

With --watch the command keeps running and copies again whenever a payload
or library in the build directory changes.

Examples:
  modpack runtime
  modpack runtime --native --flavor Debug
  modpack runtime --native --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl, err := parseFlavor(flavor)
			if err != nil {
				return err
			}
			ws, err := a.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := a.deployRuntime(out, ws.locator, fl, native); err != nil {
				return err
			}
			if !watching {
				return nil
			}

			w, err := watch.New(watch.Config{
				Dir:      ws.locator.BuildDir,
				Debounce: debounce,
				Logger:   a.logger,
				OnChange: func(_ context.Context, changed []string) error {
					a.logger.Info("build outputs changed", "files", len(changed))
					return a.deployRuntime(out, ws.locator, fl, native)
				},
			})
			if err != nil {
				return a.ioError(err)
			}
			fmt.Fprintf(out, "%s Watching %s (Ctrl+C to stop)\n", infoIcon, PathStyle.Render(ws.locator.BuildDir))
			return w.Run(cmd.Context())
		},
	}

	runtimeCmd.Flags().BoolVar(&native, "native", false, "copy the library built for this machine only")
	runtimeCmd.Flags().StringVar(&flavor, "flavor", string(modproject.FlavorDebug), "build flavor (Debug or Release)")
	runtimeCmd.Flags().BoolVarP(&watching, "watch", "w", false, "copy again whenever build outputs change")
	runtimeCmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before copying after a change")
	return runtimeCmd
}

func (a *app) deployRuntime(out io.Writer, loc *artifact.Locator, fl modproject.Flavor, native bool) error {
	d, err := stage.DeployRuntime(loc, fl, native, a.logger)
	if err != nil {
		return a.ioError(err)
	}
	for _, path := range d.Copied {
		fmt.Fprintf(out, "%s %s\n", successIcon, PathStyle.Render(path))
	}
	for _, path := range d.Skipped {
		fmt.Fprintf(out, "%s %s %s\n", infoIcon, SubtitleStyle.Render("skipped"), path)
	}
	return nil
}
