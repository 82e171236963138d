// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates decoded configuration data against embedded CUE
// schemas.
//
// Project files are not CUE themselves (mod.toml is TOML), so callers decode
// them into generic Go values first and hand those to Validate:
//
//	//go:embed mod_schema.cue
//	var schema []byte
//
//	if _, err := cueutil.Validate(schema, raw, "#ModToml",
//		cueutil.WithFilename("mod.toml")); err != nil {
//		return err // includes the JSON path of the offending field
//	}
package cueutil
