// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"modpack-cli/pkg/platform"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

// DefaultTool is the build tool used when none is configured.
const DefaultTool = "make"

var (
	// ErrBuildFailure is the sentinel wrapped by every Failure.
	ErrBuildFailure = errors.New("build failed")
	// ErrToolNotFound reports that the build tool could not be started.
	ErrToolNotFound = errors.New("build tool not found")
)

type (
	// Invoker runs the external build tool.
	Invoker struct {
		// Tool is a shell-style command line, e.g. "make -j8". Words are split
		// and $VARIABLES expanded like a POSIX shell would.
		Tool string
		// Dir is the working directory, normally the project root.
		Dir string
		// Stdout and Stderr receive the tool's output (default: os.Stdout/os.Stderr).
		Stdout io.Writer
		Stderr io.Writer
		// Sandbox selects how to reach host tools from a sandboxed process.
		Sandbox platform.SandboxType
		Logger  *log.Logger
	}

	// Failure is returned when the build tool exits non-zero or cannot run.
	Failure struct {
		Tool string
		// ExitCode is the tool's exit status, -1 when it never ran.
		ExitCode int
		Err      error
	}
)

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.ExitCode >= 0 {
		return fmt.Sprintf("%s: %s exited with status %d", ErrBuildFailure, f.Tool, f.ExitCode)
	}
	return fmt.Sprintf("%s: %v", ErrBuildFailure, f.Err)
}

// Unwrap exposes ErrBuildFailure and the underlying cause.
func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{ErrBuildFailure}
	}
	return []error{ErrBuildFailure, f.Err}
}

// Command resolves the tool into an executable path and its leading arguments.
func (inv *Invoker) Command() (string, []string, error) {
	tool := inv.Tool
	if tool == "" {
		tool = DefaultTool
	}

	fields, err := shell.Fields(tool, nil)
	if err != nil {
		return "", nil, fmt.Errorf("invalid build tool %q: %w", tool, err)
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("invalid build tool %q: empty command", tool)
	}

	path, err := exec.LookPath(fields[0])
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s: %w", ErrToolNotFound, fields[0], err)
	}
	return path, fields[1:], nil
}

// Run executes the build tool with params and waits for it to finish.
func (inv *Invoker) Run(ctx context.Context, params []Param) error {
	path, leading, err := inv.Command()
	if err != nil {
		return &Failure{Tool: inv.Tool, ExitCode: -1, Err: err}
	}

	args := append(leading, Strings(params)...)
	name, args := platform.HostCommand(inv.Sandbox, path, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = writerOr(inv.Stdout, os.Stdout)
	cmd.Stderr = writerOr(inv.Stderr, os.Stderr)

	logger := inv.logger()
	logger.Debug("running build tool", "command", name, "args", args, "dir", inv.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Error("build tool failed", "command", name, "exit", exitErr.ExitCode())
			return &Failure{Tool: name, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &Failure{Tool: name, ExitCode: -1, Err: fmt.Errorf("failed to execute build tool: %w", err)}
	}

	logger.Info("build finished", "command", name)
	return nil
}

func (inv *Invoker) logger() *log.Logger {
	if inv.Logger != nil {
		return inv.Logger
	}
	return log.New(io.Discard)
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
