// SPDX-License-Identifier: MPL-2.0

package modproject

import (
	"fmt"
	"strings"
)

const (
	// FlavorDebug builds with debug presets.
	FlavorDebug Flavor = "Debug"
	// FlavorRelease builds with release presets. Packages default to it.
	FlavorRelease Flavor = "Release"

	// StageConfigure selects the configure preset of a platform.
	StageConfigure PresetStage = "configure"
	// StageBuild selects the build preset of a platform.
	StageBuild PresetStage = "build"
)

type (
	// Flavor is a build flavor. Its string form is the preset group name.
	Flavor string

	// PresetStage is either the configure or the build step of a native library.
	PresetStage string
)

// ParseFlavor parses a flavor name case-insensitively.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return FlavorDebug, nil
	case "release":
		return FlavorRelease, nil
	default:
		return "", fmt.Errorf("unknown build flavor %q (expected Debug or Release)", s)
	}
}

// Flavors lists all flavors in preset-group order.
func Flavors() []Flavor { return []Flavor{FlavorDebug, FlavorRelease} }

// String returns the preset group name.
func (f Flavor) String() string { return string(f) }

// key is the lowercase form used in mod.toml preset keys.
func (f Flavor) key() string { return strings.ToLower(string(f)) }

// Stages lists both preset stages.
func Stages() []PresetStage { return []PresetStage{StageConfigure, StageBuild} }
