// SPDX-License-Identifier: MPL-2.0

// Package build runs the project's external build tool.
//
// The tool (make by default) is started in the project root with KEY=VALUE
// overrides derived from mod.toml and user_build_config.json. A non-zero exit
// status is a *Failure and aborts the whole run; builds are never retried.
package build
