// SPDX-License-Identifier: MPL-2.0

package config

import (
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"
)

const (
	// DefaultCompiler compiles the mod payload.
	DefaultCompiler = "clang"
	// DefaultLinker links the mod payload.
	DefaultLinker = "ld.lld"
)

type (
	// UserBuildConfig is the content of user_build_config.json.
	UserBuildConfig struct {
		ModCompiling ModCompiling `json:"mod_compiling" mapstructure:"mod_compiling"`
		// ExtlibCompiling is nil when mod.toml builds no native library.
		ExtlibCompiling *ExtlibCompiling `json:"extlib_compiling,omitempty" mapstructure:"extlib_compiling"`
	}

	// ModCompiling selects the toolchain of the mod payload.
	ModCompiling struct {
		Compiler string `json:"compiler" mapstructure:"compiler"`
		Linker   string `json:"linker" mapstructure:"linker"`
	}

	// ExtlibCompiling holds the native-library presets.
	ExtlibCompiling struct {
		PresetGroups PresetGroups `json:"preset_groups" mapstructure:"preset_groups"`
	}

	// PresetGroups holds one PresetGroup per build flavor. Viper lowercases
	// keys on read; the JSON file keeps the flavor spelling.
	PresetGroups struct {
		Debug   PresetGroup `json:"Debug" mapstructure:"debug"`
		Release PresetGroup `json:"Release" mapstructure:"release"`
	}

	// PresetGroup holds the presets of each platform for one flavor.
	PresetGroup struct {
		Windows PresetPair `json:"windows" mapstructure:"windows"`
		MacOS   PresetPair `json:"macos" mapstructure:"macos"`
		Linux   PresetPair `json:"linux" mapstructure:"linux"`
		Native  PresetPair `json:"native" mapstructure:"native"`
	}

	// PresetPair names the CMake configure and build presets.
	PresetPair struct {
		Configure string `json:"configure" mapstructure:"configure"`
		Build     string `json:"build" mapstructure:"build"`
	}
)

// DefaultConfig returns the configuration written on first run for project.
func DefaultConfig(project *modproject.Project) *UserBuildConfig {
	cfg := &UserBuildConfig{
		ModCompiling: ModCompiling{Compiler: DefaultCompiler, Linker: DefaultLinker},
	}
	if project == nil || !project.HasExtlib() {
		return cfg
	}

	ext := &ExtlibCompiling{}
	for _, flavor := range modproject.Flavors() {
		group := ext.PresetGroups.group(flavor)
		for _, pl := range platform.All() {
			pair := group.pair(pl)
			if pl == platform.PlatformNative {
				native := NativePreset(flavor)
				*pair = PresetPair{Configure: native, Build: native}
				continue
			}
			*pair = PresetPair{
				Configure: project.ExtlibPreset(pl, flavor, modproject.StageConfigure),
				Build:     project.ExtlibPreset(pl, flavor, modproject.StageBuild),
			}
		}
	}
	cfg.ExtlibCompiling = ext
	return cfg
}

// NativePreset returns the preset name used to build for the host itself,
// e.g. "native-linux-x64-Release".
func NativePreset(flavor modproject.Flavor) string {
	return "native-" + platform.HostTriple() + "-" + flavor.String()
}

// Preset returns the configured preset, or "" when no native library is
// built or the platform/flavor is unknown.
func (c *UserBuildConfig) Preset(pl platform.Platform, flavor modproject.Flavor, stage modproject.PresetStage) string {
	if c == nil || c.ExtlibCompiling == nil {
		return ""
	}
	group := c.ExtlibCompiling.PresetGroups.group(flavor)
	if group == nil {
		return ""
	}
	pair := group.pair(pl)
	if pair == nil {
		return ""
	}
	if stage == modproject.StageConfigure {
		return pair.Configure
	}
	return pair.Build
}

func (g *PresetGroups) group(flavor modproject.Flavor) *PresetGroup {
	switch flavor {
	case modproject.FlavorDebug:
		return &g.Debug
	case modproject.FlavorRelease:
		return &g.Release
	default:
		return nil
	}
}

func (g *PresetGroup) pair(pl platform.Platform) *PresetPair {
	switch pl {
	case platform.PlatformWindows:
		return &g.Windows
	case platform.PlatformMacOS:
		return &g.MacOS
	case platform.PlatformLinux:
		return &g.Linux
	case platform.PlatformNative:
		return &g.Native
	default:
		return nil
	}
}
