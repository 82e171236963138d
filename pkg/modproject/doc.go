// SPDX-License-Identifier: MPL-2.0

// Package modproject loads the project description of a recompiled mod
// (mod.toml).
//
// The file is decoded with go-toml, validated against the embedded CUE schema
// mod_schema.cue and exposed as an immutable Project value. Only the fields the
// build and packaging pipeline needs are typed; the rest of the file is left
// alone so mod.toml can keep carrying fields for other tools.
package modproject
