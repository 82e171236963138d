// SPDX-License-Identifier: MPL-2.0

// Package artifact computes where build outputs are expected to be.
//
// Nothing here touches the filesystem: existence is only checked when files
// are copied, so a missing artifact surfaces as a collection failure instead
// of an error.
package artifact

import (
	"path/filepath"

	"modpack-cli/internal/config"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"
)

const (
	// BuildDirName is the build output directory under the project root.
	BuildDirName = "build"
	// RuntimeDirName is the local game install used for testing builds.
	RuntimeDirName = "runtime"
	// ModsDirName is the directory mods are loaded from inside the runtime.
	ModsDirName = "mods"
)

type (
	// Locator maps configuration onto artifact paths.
	Locator struct {
		Project    *modproject.Project
		Config     *config.UserBuildConfig
		BuildDir   string
		RuntimeDir string
	}

	// Library is the expected location of one native library for one platform.
	Library struct {
		Name     string
		Platform platform.Platform
		// Source is the built library, e.g. build/zig-linux-x64-Release/lib/libfoo.so.
		Source string
		// DebugSource is the paired symbol file, "" when the platform has none.
		DebugSource string
		// FileName is the collected name with the "lib" prefix stripped.
		FileName string
		// DebugFileName is the collected symbol file name, "" when none.
		DebugFileName string
	}
)

// NewLocator returns a locator using the default build and runtime directories.
func NewLocator(project *modproject.Project, cfg *config.UserBuildConfig) *Locator {
	return &Locator{
		Project:    project,
		Config:     cfg,
		BuildDir:   filepath.Join(project.Root, BuildDirName),
		RuntimeDir: filepath.Join(project.Root, RuntimeDirName),
	}
}

// ModPayload returns the path of the compiled payload, build/<mod_filename>.nrm.
func (l *Locator) ModPayload() string {
	return filepath.Join(l.BuildDir, l.Project.PayloadFile())
}

// ModElf returns the compiled ELF named in mod.toml, or "".
func (l *Locator) ModElf() string {
	return l.Project.ElfFile()
}

// RuntimeModsDir returns runtime/mods.
func (l *Locator) RuntimeModsDir() string {
	return filepath.Join(l.RuntimeDir, ModsDirName)
}

// Library computes the paths of library name built for pl with flavor.
// Libraries built with a preset live in build/<preset>/<bin|lib>; without
// presets they are expected directly in build/<bin|lib>.
func (l *Locator) Library(name string, pl platform.Platform, flavor modproject.Flavor) Library {
	dir := l.BuildDir
	if preset := l.Config.Preset(pl, flavor, modproject.StageBuild); preset != "" {
		dir = filepath.Join(dir, preset)
	}
	dir = filepath.Join(dir, pl.Convention().OutputDir)

	lib := Library{
		Name:     name,
		Platform: pl,
		Source:   filepath.Join(dir, pl.LibraryFile(name)),
		FileName: platform.StripLibPrefix(pl.LibraryFile(name)),
	}
	if debug := pl.DebugFile(name); debug != "" {
		lib.DebugSource = filepath.Join(dir, debug)
		lib.DebugFileName = platform.StripLibPrefix(debug)
	}
	return lib
}

// Libraries returns every declared library for every platform in pls.
func (l *Locator) Libraries(pls []platform.Platform, flavor modproject.Flavor) []Library {
	var libs []Library
	for _, name := range l.Project.LibraryNames() {
		for _, pl := range pls {
			libs = append(libs, l.Library(name, pl, flavor))
		}
	}
	return libs
}
