// SPDX-License-Identifier: MPL-2.0

package modproject

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"modpack-cli/pkg/platform"
)

const fullModToml = `
[inputs]
mod_filename = "mm_audio_api"
elf_path = "build/mod.elf"
func_reference_syms_file = "Zelda64RecompSyms/mm.us.rev1.syms.toml"

[manifest]
id = "mm_audio_api"
display_name = "Audio API"
version = "0.4.1"
description = """
Adds an API for playing custom sequences
and sound effects."""
short_description = "Custom audio for mods."
authors = ["someone"]
minimum_recomp_version = "1.2.0"

native_libraries = [
    { name = "mm_audio_api_extlib", funcs = ["AudioApi_Init"] },
]

[extlib_compiling]
library_name = "mm_audio_api_extlib"
windows_release_configure_preset = "zig-windows-x64-Release"
windows_release_build_preset = "zig-windows-x64-Release"
linux_debug_build_preset = "zig-linux-x64-Debug"
`

const minimalModToml = `
[inputs]
mod_filename = "mymod"

[manifest]
display_name = "My Mod"
version = "1.2.0"
`

func writeModToml(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeModToml(t, fullModToml)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if p.Root != filepath.Dir(path) {
		t.Errorf("Root = %q, want %q", p.Root, filepath.Dir(path))
	}
	if p.PayloadFile() != "mm_audio_api.nrm" {
		t.Errorf("PayloadFile() = %q", p.PayloadFile())
	}
	if p.ElfFile() != filepath.Join(p.Root, "build", "mod.elf") {
		t.Errorf("ElfFile() = %q", p.ElfFile())
	}
	if p.Manifest.DisplayName != "Audio API" || p.Manifest.Version != "0.4.1" {
		t.Errorf("manifest = %+v", p.Manifest)
	}
	if !strings.Contains(p.Manifest.Description, "\n") {
		t.Error("multi-line description should keep its newline")
	}
	if !p.HasExtlib() || p.ExtlibName() != "mm_audio_api_extlib" {
		t.Errorf("extlib = %v %q", p.HasExtlib(), p.ExtlibName())
	}
	if got := p.LibraryNames(); !slices.Equal(got, []string{"mm_audio_api_extlib"}) {
		t.Errorf("LibraryNames() = %v, want a single de-duplicated entry", got)
	}
	if got := p.ExtlibPreset(platform.PlatformWindows, FlavorRelease, StageConfigure); got != "zig-windows-x64-Release" {
		t.Errorf("windows release configure preset = %q", got)
	}
	if got := p.ExtlibPreset(platform.PlatformLinux, FlavorDebug, StageBuild); got != "zig-linux-x64-Debug" {
		t.Errorf("linux debug build preset = %q", got)
	}
	if got := p.ExtlibPreset(platform.PlatformMacOS, FlavorDebug, StageBuild); got != "" {
		t.Errorf("undeclared preset = %q, want empty", got)
	}
	if got := p.ExtlibPreset(platform.PlatformNative, FlavorRelease, StageBuild); got != "" {
		t.Errorf("native preset = %q, want empty", got)
	}
	if p.PackageID() != "mm_audio_api" {
		t.Errorf("PackageID() = %q", p.PackageID())
	}
}

func TestLoadMinimal(t *testing.T) {
	p, err := Load(writeModToml(t, minimalModToml))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.HasExtlib() {
		t.Error("HasExtlib() should be false without extlib_compiling")
	}
	if len(p.LibraryNames()) != 0 {
		t.Errorf("LibraryNames() = %v, want none", p.LibraryNames())
	}
	if p.ElfFile() != "" {
		t.Errorf("ElfFile() = %q, want empty", p.ElfFile())
	}
	if p.PackageID() != "mymod" {
		t.Errorf("PackageID() without id = %q, want mod_filename", p.PackageID())
	}
}

func TestLoadConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "missing mod_filename",
			content: "[inputs]\n[manifest]\ndisplay_name = \"X\"\nversion = \"1.0.0\"\n",
			field:   "mod_filename",
		},
		{
			name:    "missing display_name",
			content: "[inputs]\nmod_filename = \"x\"\n[manifest]\nversion = \"1.0.0\"\n",
			field:   "display_name",
		},
		{
			name:    "missing version",
			content: "[inputs]\nmod_filename = \"x\"\n[manifest]\ndisplay_name = \"X\"\n",
			field:   "version",
		},
		{
			name:    "blank display_name",
			content: "[inputs]\nmod_filename = \"x\"\n[manifest]\ndisplay_name = \"  \"\nversion = \"1.0.0\"\n",
			field:   "display_name",
		},
		{
			name:    "missing manifest section",
			content: "[inputs]\nmod_filename = \"x\"\n",
			field:   "manifest",
		},
		{
			name:    "wrong type",
			content: "[inputs]\nmod_filename = 3\n[manifest]\ndisplay_name = \"X\"\nversion = \"1.0.0\"\n",
			field:   "mod_filename",
		},
		{
			name:    "reserved payload name",
			content: "[inputs]\nmod_filename = \"con\"\n[manifest]\ndisplay_name = \"X\"\nversion = \"1.0.0\"\n",
			field:   "mod_filename",
		},
		{
			name:    "native library without name",
			content: minimalModToml + "native_libraries = [{ funcs = [] }]\n",
			field:   "native_libraries",
		},
		{
			name:    "invalid toml",
			content: "[inputs\nmod_filename = \"x\"\n",
			field:   "mod.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeModToml(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("error should wrap ErrConfiguration, got %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error should be a *ConfigurationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error should mention %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestParseFlavor(t *testing.T) {
	for in, want := range map[string]Flavor{"debug": FlavorDebug, "Release": FlavorRelease, " RELEASE ": FlavorRelease} {
		got, err := ParseFlavor(in)
		if err != nil || got != want {
			t.Errorf("ParseFlavor(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFlavor("profile"); err == nil {
		t.Error("ParseFlavor(profile) should fail")
	}
}

func TestPresetKey(t *testing.T) {
	if got := PresetKey(platform.PlatformMacOS, FlavorRelease, StageConfigure); got != "macos_release_configure_preset" {
		t.Errorf("PresetKey() = %q", got)
	}
}
