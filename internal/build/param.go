// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"sort"
	"strings"

	"modpack-cli/internal/config"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"
)

// Override keys understood by the project Makefile.
const (
	KeyModCompiler       = "MOD_COMPILER"
	KeyModLinker         = "MOD_LINKER"
	KeyExtlibPresetGroup = "EXTLIB_CMAKE_PRESET_GROUP"
)

// Param is a single KEY=VALUE override passed to the build tool.
type Param struct {
	Key   string
	Value string
}

// String returns the command-line form KEY=VALUE.
func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// ParseParams parses KEY=VALUE arguments. Keys must be non-empty and must not
// contain whitespace; values may be empty.
func ParseParams(args []string) ([]Param, error) {
	params := make([]Param, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid build parameter %q: expected KEY=VALUE", arg)
		}
		if key == "" || strings.ContainsAny(key, " \t\n") {
			return nil, fmt.Errorf("invalid build parameter %q: bad key", arg)
		}
		params = append(params, Param{Key: key, Value: value})
	}
	return params, nil
}

// Overrides derives the parameters of a build from configuration, sorted by key.
func Overrides(cfg *config.UserBuildConfig, flavor modproject.Flavor) []Param {
	params := []Param{
		{Key: KeyModCompiler, Value: cfg.ModCompiling.Compiler},
		{Key: KeyModLinker, Value: cfg.ModCompiling.Linker},
		{Key: KeyExtlibPresetGroup, Value: flavor.String()},
	}

	if cfg.ExtlibCompiling != nil {
		for _, pl := range platform.All() {
			for _, stage := range modproject.Stages() {
				params = append(params, Param{
					Key:   PresetParamKey(pl, stage),
					Value: cfg.Preset(pl, flavor, stage),
				})
			}
		}
	}

	sort.Slice(params, func(i, j int) bool { return params[i].Key < params[j].Key })
	return params
}

// PresetParamKey returns e.g. "EXTLIB_LINUX_BUILD_PRESET".
func PresetParamKey(pl platform.Platform, stage modproject.PresetStage) string {
	return strings.ToUpper(fmt.Sprintf("EXTLIB_%s_%s_PRESET", pl.Key(), stage))
}

// Merge returns base with every key also present in extra replaced; extra
// parameters follow in their given order.
func Merge(base, extra []Param) []Param {
	override := make(map[string]bool, len(extra))
	for _, p := range extra {
		override[p.Key] = true
	}

	merged := make([]Param, 0, len(base)+len(extra))
	for _, p := range base {
		if !override[p.Key] {
			merged = append(merged, p)
		}
	}
	return append(merged, extra...)
}

// Strings converts params to their KEY=VALUE form.
func Strings(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}
	return out
}
