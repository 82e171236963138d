// SPDX-License-Identifier: MPL-2.0

package modproject

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modpack-cli/pkg/cueutil"
	"modpack-cli/pkg/platform"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the project description file at the project root.
	FileName = "mod.toml"
	// PayloadExtension is the extension of the compiled mod payload.
	PayloadExtension = ".nrm"
)

//go:embed mod_schema.cue
var modSchema []byte

type (
	// Project is the parsed project description. It is never mutated after Load.
	Project struct {
		Inputs          Inputs            `toml:"inputs"`
		Manifest        Manifest          `toml:"manifest"`
		ExtlibCompiling map[string]string `toml:"extlib_compiling"`

		// Root is the directory holding mod.toml.
		Root string `toml:"-"`
		// File is the absolute path of mod.toml.
		File string `toml:"-"`
	}

	// Inputs describes the files the mod compiler consumes and produces.
	Inputs struct {
		ModFilename string `toml:"mod_filename"`
		ElfPath     string `toml:"elf_path"`
	}

	// Manifest holds the metadata shown to players.
	Manifest struct {
		ID               string          `toml:"id"`
		DisplayName      string          `toml:"display_name"`
		Version          string          `toml:"version"`
		Description      string          `toml:"description"`
		ShortDescription string          `toml:"short_description"`
		WebsiteURL       string          `toml:"website_url"`
		NativeLibraries  []NativeLibrary `toml:"native_libraries"`
	}

	// NativeLibrary declares a shared library shipped next to the payload.
	NativeLibrary struct {
		Name  string   `toml:"name"`
		Funcs []string `toml:"funcs"`
	}
)

// Load reads and validates mod.toml at path.
func Load(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConfigurationError{File: path, Err: fmt.Errorf("failed to resolve path: %w", err)}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &ConfigurationError{File: absPath, Err: err}
	}

	p, err := Parse(data, filepath.Base(absPath))
	if err != nil {
		return nil, err
	}
	p.File = absPath
	p.Root = filepath.Dir(absPath)
	return p, nil
}

// Parse validates and decodes mod.toml content. filename only labels errors.
// The returned project has no Root; callers building paths should use Load.
func Parse(data []byte, filename string) (*Project, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, &ConfigurationError{File: filename, Err: err}
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{File: filename, Err: describeDecodeError(filename, err)}
	}

	if _, err := cueutil.Validate(modSchema, raw, "#ModToml", cueutil.WithFilename(filename)); err != nil {
		return nil, &ConfigurationError{File: filename, Err: err}
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, &ConfigurationError{File: filename, Err: describeDecodeError(filename, err)}
	}

	if platform.IsWindowsReservedName(p.Inputs.ModFilename) {
		return nil, &ConfigurationError{
			File: filename,
			Err:  fmt.Errorf("%s: inputs.mod_filename: %q is a reserved file name on Windows", filename, p.Inputs.ModFilename),
		}
	}

	return &p, nil
}

func describeDecodeError(filename string, err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("%s:%d:%d: %s", filename, row, col, derr.Error())
	}
	return fmt.Errorf("%s: %w", filename, err)
}

// PayloadFile returns the payload file name, e.g. "mymod.nrm".
func (p *Project) PayloadFile() string {
	return p.Inputs.ModFilename + PayloadExtension
}

// ElfFile returns the absolute path of the compiled ELF, or "" when mod.toml
// does not name one.
func (p *Project) ElfFile() string {
	if p.Inputs.ElfPath == "" {
		return ""
	}
	if filepath.IsAbs(p.Inputs.ElfPath) {
		return p.Inputs.ElfPath
	}
	return filepath.Join(p.Root, filepath.FromSlash(p.Inputs.ElfPath))
}

// PackageID returns the mod id, falling back to the payload name.
func (p *Project) PackageID() string {
	if id := strings.TrimSpace(p.Manifest.ID); id != "" {
		return id
	}
	return p.Inputs.ModFilename
}

// HasExtlib reports whether mod.toml has an extlib_compiling section.
func (p *Project) HasExtlib() bool {
	return p.ExtlibCompiling != nil
}

// ExtlibName returns the library built by extlib_compiling, or "".
func (p *Project) ExtlibName() string {
	return p.ExtlibCompiling["library_name"]
}

// LibraryNames returns every native library the mod ships: the declared
// native_libraries followed by the extlib library, without duplicates.
func (p *Project) LibraryNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, lib := range p.Manifest.NativeLibraries {
		add(lib.Name)
	}
	add(p.ExtlibName())
	return names
}

// ExtlibPreset returns the preset declared in extlib_compiling for a
// distributed platform, e.g. key "linux_release_build_preset". The native
// platform has no mod.toml preset and always yields "".
func (p *Project) ExtlibPreset(pl platform.Platform, flavor Flavor, stage PresetStage) string {
	if pl == platform.PlatformNative {
		return ""
	}
	return p.ExtlibCompiling[PresetKey(pl, flavor, stage)]
}

// PresetKey builds the mod.toml key of a preset.
func PresetKey(pl platform.Platform, flavor Flavor, stage PresetStage) string {
	return fmt.Sprintf("%s_%s_%s_preset", pl.Key(), flavor.key(), stage)
}
