// SPDX-License-Identifier: MPL-2.0

// Package vcs queries the project's source-control metadata.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"modpack-cli/pkg/platform"
)

// GitCommand is the executable queried for remote URLs.
var GitCommand = "git"

// RemoteURL returns the URL of the "origin" remote of the repository at dir.
// It is best effort: ok is false when git is missing, dir is not a
// repository or no origin is configured.
func RemoteURL(ctx context.Context, dir string) (url string, ok bool) {
	gitPath, err := exec.LookPath(GitCommand)
	if err != nil {
		return "", false
	}

	name, args := platform.HostCommand(platform.DetectSandbox(), gitPath, []string{"config", "--get", "remote.origin.url"})
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", false
	}

	url = strings.TrimSpace(stdout.String())
	return url, url != ""
}
