// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"modpack-cli/pkg/modproject"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces a specific file instead of <project root>/user_build_config.json.
	ConfigFilePath string
}

// Provider loads the user build configuration of a project.
type Provider interface {
	Load(ctx context.Context, project *modproject.Project, opts LoadOptions) (*Loaded, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by the filesystem.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads the configuration, creating it first when missing.
func (p *fileProvider) Load(ctx context.Context, project *modproject.Project, opts LoadOptions) (*Loaded, error) {
	return Load(ctx, project, opts)
}
