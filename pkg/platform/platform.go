// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"strings"
)

const (
	// PlatformWindows targets Windows (.dll, symbols in .pdb).
	PlatformWindows Platform = iota + 1
	// PlatformMacOS targets macOS (.dylib).
	PlatformMacOS
	// PlatformLinux targets Linux (.so).
	PlatformLinux
	// PlatformNative is whatever the host is, built with the host's own preset.
	PlatformNative

	// LibPrefix is stripped from built library names when they are collected.
	LibPrefix = "lib"
)

type (
	// Platform identifies a native-library build target.
	Platform int

	// Convention is the shared-library naming convention of a platform.
	Convention struct {
		// Key is the name used in configuration files ("windows", "macos", ...).
		Key string
		// Extension is the shared-library file extension, including the dot.
		Extension string
		// OutputDir is the subdirectory of a preset build dir holding the library.
		OutputDir string
		// DebugExtension is the extension of the paired debug-symbol file,
		// empty when symbols are embedded in the library itself.
		DebugExtension string
	}
)

var conventions = map[Platform]Convention{
	PlatformWindows: {Key: "windows", Extension: ".dll", OutputDir: "bin", DebugExtension: ".pdb"},
	PlatformMacOS:   {Key: "macos", Extension: ".dylib", OutputDir: "lib"},
	PlatformLinux:   {Key: "linux", Extension: ".so", OutputDir: "lib"},
}

// Distributed lists the platforms whose libraries ship in a package.
func Distributed() []Platform {
	return []Platform{PlatformWindows, PlatformMacOS, PlatformLinux}
}

// All lists every platform a preset group configures.
func All() []Platform {
	return []Platform{PlatformWindows, PlatformMacOS, PlatformLinux, PlatformNative}
}

// Resolve maps PlatformNative onto the host platform. Other values are returned as is.
func (p Platform) Resolve() Platform {
	if p == PlatformNative {
		return Host()
	}
	return p
}

// Convention returns the naming convention of the platform. The native
// platform uses the host's extension but keeps its own configuration key.
func (p Platform) Convention() Convention {
	c := conventions[p.Resolve()]
	if p == PlatformNative {
		c.Key = "native"
	}
	return c
}

// Key returns the configuration key of the platform.
func (p Platform) Key() string { return p.Convention().Key }

// String returns the configuration key, or a placeholder for unknown values.
func (p Platform) String() string {
	if k := p.Key(); k != "" {
		return k
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// LibraryFile returns the built file name of library name, e.g. "libfoo.so".
func (p Platform) LibraryFile(name string) string {
	return LibPrefix + name + p.Convention().Extension
}

// DebugFile returns the paired debug-symbol file name of library name, or
// "" when the platform does not produce separate symbols.
func (p Platform) DebugFile(name string) string {
	c := p.Convention()
	if c.DebugExtension == "" {
		return ""
	}
	return LibPrefix + name + c.DebugExtension
}

// Parse maps a configuration key back to its Platform.
func Parse(key string) (Platform, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, p := range All() {
		if p.Key() == k {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q (expected windows, macos, linux or native)", key)
}

// StripLibPrefix drops a leading "lib" from a file name so that a library
// built as libfoo.so is collected as foo.so.
func StripLibPrefix(fileName string) string {
	return strings.TrimPrefix(fileName, LibPrefix)
}
