// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown troubleshooting guides.
//
// ActionableError carries the failed operation, the file involved and
// suggestions. Issue guides are longer Markdown documents rendered with
// glamour when a run aborts (build failure, invalid mod.toml, missing
// artifacts).
package issue
