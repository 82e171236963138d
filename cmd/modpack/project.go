// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"modpack-cli/internal/artifact"
	"modpack-cli/internal/build"
	"modpack-cli/internal/config"
	"modpack-cli/internal/issue"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"
)

// settingBuildTool is bound to --build-tool and MODPACK_BUILD_TOOL.
const settingBuildTool = "build_tool"

// workspace is everything a command needs about the project.
type workspace struct {
	project *modproject.Project
	config  *config.UserBuildConfig
	locator *artifact.Locator
}

func (a *app) loadProject() (*modproject.Project, error) {
	project, err := modproject.Load(filepath.Join(a.projectDir, modproject.FileName))
	if err != nil {
		id := issue.ModTomlInvalidId
		if errors.Is(err, fs.ErrNotExist) {
			id = issue.ModTomlNotFoundId
		}
		return nil, a.fail(ExitConfig, id, err)
	}
	a.logger.Debug("loaded project", "file", project.File, "mod", project.Inputs.ModFilename)
	return project, nil
}

func (a *app) loadWorkspace(ctx context.Context) (*workspace, error) {
	project, err := a.loadProject()
	if err != nil {
		return nil, err
	}

	loaded, err := a.config.Load(ctx, project, config.LoadOptions{ConfigFilePath: a.configFile})
	if err != nil {
		return nil, a.fail(ExitConfig, issue.UserConfigInvalidId, err)
	}
	if loaded.Created {
		a.logger.Info("created user build configuration", "path", loaded.Path)
	}

	return &workspace{
		project: project,
		config:  loaded.Config,
		locator: artifact.NewLocator(project, loaded.Config),
	}, nil
}

func (a *app) invoker(ws *workspace, stdout, stderr io.Writer) *build.Invoker {
	return &build.Invoker{
		Tool:    a.settings.GetString(settingBuildTool),
		Dir:     ws.project.Root,
		Stdout:  stdout,
		Stderr:  stderr,
		Sandbox: platform.DetectSandbox(),
		Logger:  a.logger,
	}
}

// fail prints the troubleshooting guide id and returns err with an exit code.
func (a *app) fail(code int, id issue.Id, err error) error {
	if guide := issue.Get(id); guide != nil {
		rendered, renderErr := guide.Render(a.issueStyle)
		if renderErr != nil {
			a.logger.Warn("failed to render issue guide", "issue", id, "error", renderErr)
		} else {
			fmt.Fprint(a.stderr, rendered)
		}
	}
	return &ExitError{Code: code, Err: errors.New(formatErrorForDisplay(err, a.verbose))}
}

// buildError maps a build invocation error to its guide and exit code: the
// tool's own status when it ran, 1 otherwise.
func (a *app) buildError(err error) error {
	var failure *build.Failure
	if !errors.As(err, &failure) {
		return a.ioError(err)
	}
	if errors.Is(err, build.ErrToolNotFound) {
		return a.fail(ExitFailure, issue.BuildToolNotFoundId, err)
	}
	code := failure.ExitCode
	if code <= 0 {
		code = ExitFailure
	}
	return a.fail(code, issue.BuildFailedId, err)
}

func (a *app) ioError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return a.fail(ExitFailure, issue.PermissionDeniedId, err)
	}
	return &ExitError{Code: ExitFailure, Err: err}
}

func parseFlavor(s string) (modproject.Flavor, error) {
	flavor, err := modproject.ParseFlavor(s)
	if err != nil {
		return "", &ExitError{Code: ExitConfig, Err: fmt.Errorf("--flavor: %w", err)}
	}
	return flavor, nil
}
