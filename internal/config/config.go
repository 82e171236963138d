// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modpack-cli/internal/issue"
	"modpack-cli/pkg/modproject"

	"github.com/spf13/viper"
)

const (
	// FileName is the name of the user build configuration file.
	FileName = "user_build_config.json"
	// EnvPrefix prefixes environment overrides (MODPACK_MOD_COMPILING_LINKER, ...).
	EnvPrefix = "MODPACK"
)

// Loaded is a configuration together with where it came from.
type Loaded struct {
	Config *UserBuildConfig
	// Path is the file the configuration was read from or written to.
	Path string
	// Created is true when this call wrote the file.
	Created bool
}

// Path returns the default configuration path of project.
func Path(project *modproject.Project) string {
	return filepath.Join(project.Root, FileName)
}

// Load returns the user build configuration of project. A missing file is
// created from DefaultConfig and persisted; an existing file is read as is
// and never rewritten.
func Load(ctx context.Context, project *modproject.Project, opts LoadOptions) (*Loaded, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	path := opts.ConfigFilePath
	if path == "" {
		path = Path(project)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig(project)
		if err := Save(path, cfg); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("create user build configuration").
				WithResource(path).
				WithSuggestion("Check that the project directory is writable").
				Wrap(err).
				BuildError()
		}
		return &Loaded{Config: withEnvOverrides(cfg), Path: path, Created: true}, nil
	} else if err != nil {
		return nil, issue.WrapWithContext(err, "load user build configuration", path)
	}

	cfg, err := read(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load user build configuration").
			WithResource(path).
			WithSuggestion("Check that the file contains valid JSON").
			WithSuggestion("Delete the file to regenerate it with defaults").
			Wrap(err).
			BuildError()
	}
	return &Loaded{Config: cfg, Path: path}, nil
}

// read loads path through Viper so that defaults and environment overrides apply.
func read(path string) (*UserBuildConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserBuildConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// withEnvOverrides applies environment overrides to a freshly created config
// without touching what was written to disk.
func withEnvOverrides(cfg *UserBuildConfig) *UserBuildConfig {
	v := newViper()
	data, err := json.Marshal(cfg)
	if err != nil {
		return cfg
	}
	v.SetConfigType("json")
	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return cfg
	}
	var out UserBuildConfig
	if err := v.Unmarshal(&out); err != nil {
		return cfg
	}
	return &out
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("mod_compiling.compiler", DefaultCompiler)
	v.SetDefault("mod_compiling.linker", DefaultLinker)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes cfg to path as 4-space indented JSON.
func Save(path string, cfg *UserBuildConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders cfg the way it is stored on disk.
func Marshal(cfg *UserBuildConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
