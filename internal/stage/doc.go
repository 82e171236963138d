// SPDX-License-Identifier: MPL-2.0

// Package stage assembles the Thunderstore package in the staging directory,
// drives the build → stage → archive pipeline and deploys fresh builds into
// the local runtime directory.
//
// Missing artifacts never abort a run. Every copy is recorded in a Report and
// the archive is only written when all required files were collected.
package stage
