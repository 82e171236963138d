// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modpack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"modpack-cli/internal/config"
	"modpack-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// app holds the global flags and the services shared by all commands.
type app struct {
	projectDir string
	configFile string
	buildTool  string
	verbose    bool

	// settings resolves flags that can also come from MODPACK_* variables.
	settings *viper.Viper
	// issueStyle is the glamour style used for troubleshooting guides.
	issueStyle string
	config     config.Provider
	logger     *log.Logger
	stderr     io.Writer
}

func newApp() *app {
	return &app{
		projectDir: ".",
		settings:   viper.New(),
		issueStyle: "dark",
		config:     config.NewProvider(),
		logger:     log.New(io.Discard),
		stderr:     os.Stderr,
	}
}

// newRootCommand builds the command tree around a.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modpack",
		Short: "Build and package recompiled game mods for Thunderstore",
		Long: TitleStyle.Render("modpack") + SubtitleStyle.Render(" - Build and package recompiled game mods") + `

modpack reads mod.toml, runs the project's build tool, collects the mod
payload and its native libraries and bundles them with a generated
manifest, README and CHANGELOG into <name>.thunderstore.zip.

` + SubtitleStyle.Render("Examples:") + `
  modpack build             Build the mod and its native libraries
  modpack package           Build, stage in dist/ and archive
  modpack runtime --native  Copy a native build into runtime/mods
  modpack config show       Show the user build configuration`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.stderr = cmd.ErrOrStderr()
			a.logger = newLogger(a.stderr, a.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.projectDir, "project", "C", a.projectDir, "project root holding mod.toml")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "user build configuration file (default <project>/user_build_config.json)")
	rootCmd.PersistentFlags().StringVar(&a.buildTool, "build-tool", "", "build tool command line (default \"make\", env MODPACK_BUILD_TOOL)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	a.settings.SetEnvPrefix(config.EnvPrefix)
	_ = a.settings.BindEnv(settingBuildTool)
	_ = a.settings.BindPFlag(settingBuildTool, rootCmd.PersistentFlags().Lookup("build-tool"))

	rootCmd.AddCommand(
		newBuildCommand(a),
		newPackageCommand(a),
		newRuntimeCommand(a),
		newCleanCommand(a),
		newAssetsCommand(a),
		newQueryCommand(a),
		newConfigCommand(a),
	)
	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "modpack",
		Level:  level,
	})
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the code carried by an ExitError.
// This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(newApp()),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// formatErrorForDisplay formats an error for user display.
// In verbose mode, ActionableErrors show their full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
