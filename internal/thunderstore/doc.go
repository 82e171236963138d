// SPDX-License-Identifier: MPL-2.0

// Package thunderstore produces the files a Thunderstore package is made of:
// the distribution manifest, README.md and CHANGELOG.md, and the final
// <name>.thunderstore.zip archive built from the staging directory.
package thunderstore
