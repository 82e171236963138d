// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"modpack-cli/internal/build"
	"modpack-cli/internal/issue"
	"modpack-cli/internal/stage"
	"modpack-cli/pkg/modproject"

	"github.com/spf13/cobra"
)

type packageOptions struct {
	skipBuild  bool
	archiveKey string
	flavor     string
	stagingDir string
}

func newPackageCommand(a *app) *cobra.Command {
	opts := &packageOptions{}

	packageCmd := &cobra.Command{
		Use:   "package [KEY=VALUE...]",
		Short: "Build, stage and archive the Thunderstore package",
		Long: `Build the mod, stage the package in dist/ and create <name>.thunderstore.zip.

The manifest is created on the first run and updated afterwards: its name
and dependencies are never changed once written. README.md and CHANGELOG.md
are only created when missing, so they can be edited freely.

When a required file is missing no archive is created and modpack exits
with status 3, leaving dist/ in place for inspection.

Examples:
  modpack package
  modpack package --skip-build
  modpack package --archive-key id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, a, opts, args)
		},
	}

	packageCmd.Flags().BoolVar(&opts.skipBuild, "skip-build", false, "package existing build outputs without building")
	packageCmd.Flags().StringVar(&opts.archiveKey, "archive-key", "name", "name the archive after the manifest name (name) or the mod id (id)")
	packageCmd.Flags().StringVar(&opts.flavor, "flavor", string(modproject.FlavorRelease), "build flavor of the packaged libraries")
	packageCmd.Flags().StringVar(&opts.stagingDir, "staging-dir", stage.StagingDirName, "staging directory, relative to the project root")
	return packageCmd
}

func runPackage(cmd *cobra.Command, a *app, opts *packageOptions, args []string) error {
	flavor, err := parseFlavor(opts.flavor)
	if err != nil {
		return err
	}
	key, err := stage.ParseArchiveKey(opts.archiveKey)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}
	extra, err := build.ParseParams(args)
	if err != nil {
		return &ExitError{Code: ExitConfig, Err: err}
	}

	ctx := cmd.Context()
	ws, err := a.loadWorkspace(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Package "+ws.project.Manifest.DisplayName))

	report := &stage.Report{}
	assembler := stage.NewAssembler(ws.project, ws.locator, report, a.logger)
	assembler.Flavor = flavor
	if filepath.IsAbs(opts.stagingDir) {
		assembler.StagingDir = opts.stagingDir
	} else {
		assembler.StagingDir = filepath.Join(ws.project.Root, opts.stagingDir)
	}

	pipeline := &stage.Pipeline{
		Config:     ws.config,
		Params:     extra,
		Assembler:  assembler,
		ArchiveKey: key,
		Logger:     a.logger,
	}
	if !opts.skipBuild {
		pipeline.Invoker = a.invoker(ws, out, cmd.ErrOrStderr())
	}

	outcome, err := pipeline.Run(ctx)
	if _, writeErr := report.WriteTo(out); writeErr != nil {
		a.logger.Warn("failed to print report", "error", writeErr)
	}
	if err != nil {
		if outcome.State == stage.StateConfigured {
			return a.buildError(err)
		}
		return a.ioError(err)
	}

	if outcome.State == stage.StateIncomplete {
		fmt.Fprintf(out, "\n%s Files are missing, archive not created\n", errorIcon)
		return a.fail(ExitIncomplete, issue.ArtifactsMissingId, outcome.Err())
	}

	fmt.Fprintf(out, "\n%s Package ready\n", successIcon)
	fmt.Fprintf(out, "%s Archive: %s\n", infoIcon, PathStyle.Render(outcome.ArchivePath))
	return nil
}
