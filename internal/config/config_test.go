// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modpack-cli/internal/issue"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"
)

func newProject(t *testing.T, extlib bool) *modproject.Project {
	t.Helper()
	p := &modproject.Project{
		Inputs:   modproject.Inputs{ModFilename: "mymod"},
		Manifest: modproject.Manifest{DisplayName: "My Mod", Version: "1.0.0"},
		Root:     t.TempDir(),
	}
	if extlib {
		p.ExtlibCompiling = map[string]string{
			"library_name":                     "mymod_extlib",
			"windows_release_configure_preset": "zig-windows-x64-Release",
			"windows_release_build_preset":     "zig-windows-x64-Release-build",
			"macos_debug_build_preset":         "zig-macos-aarch64-Debug",
			"linux_release_build_preset":       "zig-linux-x64-Release",
		}
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	t.Run("without extlib", func(t *testing.T) {
		cfg := DefaultConfig(newProject(t, false))
		if cfg.ModCompiling.Compiler != "clang" || cfg.ModCompiling.Linker != "ld.lld" {
			t.Errorf("mod_compiling = %+v", cfg.ModCompiling)
		}
		if cfg.ExtlibCompiling != nil {
			t.Error("extlib_compiling should be absent")
		}
		if got := cfg.Preset(platform.PlatformLinux, modproject.FlavorRelease, modproject.StageBuild); got != "" {
			t.Errorf("Preset() = %q, want empty", got)
		}
	})

	t.Run("with extlib", func(t *testing.T) {
		cfg := DefaultConfig(newProject(t, true))
		if cfg.ExtlibCompiling == nil {
			t.Fatal("extlib_compiling should be present")
		}

		tests := []struct {
			pl     platform.Platform
			flavor modproject.Flavor
			stage  modproject.PresetStage
			want   string
		}{
			{platform.PlatformWindows, modproject.FlavorRelease, modproject.StageConfigure, "zig-windows-x64-Release"},
			{platform.PlatformWindows, modproject.FlavorRelease, modproject.StageBuild, "zig-windows-x64-Release-build"},
			{platform.PlatformMacOS, modproject.FlavorDebug, modproject.StageBuild, "zig-macos-aarch64-Debug"},
			{platform.PlatformLinux, modproject.FlavorRelease, modproject.StageBuild, "zig-linux-x64-Release"},
			{platform.PlatformLinux, modproject.FlavorDebug, modproject.StageBuild, ""},
			{platform.PlatformNative, modproject.FlavorDebug, modproject.StageConfigure, NativePreset(modproject.FlavorDebug)},
			{platform.PlatformNative, modproject.FlavorRelease, modproject.StageBuild, NativePreset(modproject.FlavorRelease)},
		}
		for _, tt := range tests {
			if got := cfg.Preset(tt.pl, tt.flavor, tt.stage); got != tt.want {
				t.Errorf("Preset(%v, %v, %v) = %q, want %q", tt.pl, tt.flavor, tt.stage, got, tt.want)
			}
		}
	})
}

func TestNativePreset(t *testing.T) {
	got := NativePreset(modproject.FlavorRelease)
	if !strings.HasPrefix(got, "native-") || !strings.HasSuffix(got, "-Release") {
		t.Errorf("NativePreset() = %q", got)
	}
	if !strings.Contains(got, platform.HostTriple()) {
		t.Errorf("NativePreset() = %q should contain host triple %q", got, platform.HostTriple())
	}
}

func TestLoadCreatesOnce(t *testing.T) {
	project := newProject(t, true)
	path := Path(project)

	loaded, err := Load(context.Background(), project, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !loaded.Created || loaded.Path != path {
		t.Errorf("first Load() = created %v path %q", loaded.Created, loaded.Path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"mod_compiling\"") {
		t.Errorf("config should be indented with 4 spaces:\n%s", data)
	}
	if !strings.Contains(string(data), `"Release"`) {
		t.Errorf("preset groups should keep flavor spelling:\n%s", data)
	}

	// Edit the file; a second load must read it back and not rewrite it.
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	raw["mod_compiling"] = map[string]any{"compiler": "clang-18", "linker": "ld.lld"}
	edited, _ := json.MarshalIndent(raw, "", "    ")
	if err := os.WriteFile(path, edited, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err = Load(context.Background(), project, LoadOptions{})
	if err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if loaded.Created {
		t.Error("second Load() should not create the file")
	}
	if loaded.Config.ModCompiling.Compiler != "clang-18" {
		t.Errorf("compiler = %q, want clang-18", loaded.Config.ModCompiling.Compiler)
	}
	if got := loaded.Config.Preset(platform.PlatformWindows, modproject.FlavorRelease, modproject.StageConfigure); got != "zig-windows-x64-Release" {
		t.Errorf("preset read back = %q", got)
	}

	after, _ := os.ReadFile(path)
	if string(after) != string(edited) {
		t.Error("existing config must not be rewritten")
	}
}

func TestLoadDefaultsForMissingKeys(t *testing.T) {
	project := newProject(t, false)
	if err := os.WriteFile(Path(project), []byte(`{"mod_compiling": {"linker": "lld-link"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(context.Background(), project, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Config.ModCompiling.Compiler != DefaultCompiler {
		t.Errorf("compiler = %q, want default", loaded.Config.ModCompiling.Compiler)
	}
	if loaded.Config.ModCompiling.Linker != "lld-link" {
		t.Errorf("linker = %q", loaded.Config.ModCompiling.Linker)
	}
	if loaded.Config.ExtlibCompiling != nil {
		t.Error("extlib_compiling should stay nil")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MODPACK_MOD_COMPILING_COMPILER", "gcc")
	project := newProject(t, false)

	loaded, err := Load(context.Background(), project, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Config.ModCompiling.Compiler != "gcc" {
		t.Errorf("compiler = %q, want env override gcc", loaded.Config.ModCompiling.Compiler)
	}

	data, _ := os.ReadFile(loaded.Path)
	if strings.Contains(string(data), "gcc") {
		t.Error("environment overrides must not be persisted")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	project := newProject(t, false)
	if err := os.WriteFile(Path(project), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), project, LoadOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected ActionableError, got %T", err)
	}
	if !ae.HasSuggestions() {
		t.Error("error should carry suggestions")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	project := newProject(t, false)
	custom := filepath.Join(t.TempDir(), "nested", "custom.json")

	loaded, err := NewProvider().Load(context.Background(), project, LoadOptions{ConfigFilePath: custom})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Path != custom || !loaded.Created {
		t.Errorf("Load() = %+v", loaded)
	}
	if _, err := os.Stat(Path(project)); !errors.Is(err, os.ErrNotExist) {
		t.Error("default path should not be written when an explicit path is given")
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, newProject(t, false), LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
