// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// hostGOOS is swapped by tests that need a specific host.
var hostGOOS = runtime.GOOS

// HostTriple returns the "<os>-<arch>" fragment used in native preset names.
// Only the three triples the mod toolchain ships presets for are returned.
func HostTriple() string {
	switch hostGOOS {
	case Windows:
		return "windows-x64"
	case Darwin:
		return "macos-aarch64"
	default:
		return "linux-x64"
	}
}

// Host returns the concrete platform the tool is currently running on.
func Host() Platform {
	switch hostGOOS {
	case Windows:
		return PlatformWindows
	case Darwin:
		return PlatformMacOS
	default:
		return PlatformLinux
	}
}
