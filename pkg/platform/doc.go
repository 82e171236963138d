// SPDX-License-Identifier: MPL-2.0

// Package platform describes the operating systems a mod's native libraries
// are built for.
//
// A Platform carries the shared-library naming convention of its OS (file
// extension, output subdirectory, debug-symbol extension) so callers never
// branch on platform name strings. The package also detects the host OS and
// application sandboxes that need a spawn helper to reach host tools.
package platform
