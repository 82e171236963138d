// SPDX-License-Identifier: MPL-2.0

// Package config handles the user-local build configuration using Viper.
//
// The configuration lives in user_build_config.json at the project root. It
// picks the mod compiler/linker and the native-library build presets for every
// platform and flavor. The file is created with defaults on first use, seeded
// from the extlib_compiling section of mod.toml, and is never rewritten
// afterwards so local edits survive. Every value can be overridden through
// MODPACK_* environment variables (e.g. MODPACK_MOD_COMPILING_COMPILER).
package config
