// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"slices"
	"testing"
)

func withHost(t *testing.T, goos string) {
	t.Helper()
	orig := hostGOOS
	hostGOOS = goos
	t.Cleanup(func() { hostGOOS = orig })
}

func TestConventions(t *testing.T) {
	tests := []struct {
		platform  Platform
		key       string
		libFile   string
		debugFile string
	}{
		{PlatformWindows, "windows", "libfoo.dll", "libfoo.pdb"},
		{PlatformMacOS, "macos", "libfoo.dylib", ""},
		{PlatformLinux, "linux", "libfoo.so", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := tt.platform.Key(); got != tt.key {
				t.Errorf("Key() = %q, want %q", got, tt.key)
			}
			if got := tt.platform.LibraryFile("foo"); got != tt.libFile {
				t.Errorf("LibraryFile() = %q, want %q", got, tt.libFile)
			}
			if got := tt.platform.DebugFile("foo"); got != tt.debugFile {
				t.Errorf("DebugFile() = %q, want %q", got, tt.debugFile)
			}
		})
	}
}

func TestNativeFollowsHost(t *testing.T) {
	t.Run("windows host", func(t *testing.T) {
		withHost(t, Windows)
		if got := PlatformNative.LibraryFile("foo"); got != "libfoo.dll" {
			t.Errorf("LibraryFile() = %q, want libfoo.dll", got)
		}
		if got := PlatformNative.DebugFile("foo"); got != "libfoo.pdb" {
			t.Errorf("DebugFile() = %q, want libfoo.pdb", got)
		}
		if got := PlatformNative.Convention().OutputDir; got != "bin" {
			t.Errorf("OutputDir = %q, want bin", got)
		}
		if got := HostTriple(); got != "windows-x64" {
			t.Errorf("HostTriple() = %q", got)
		}
	})

	t.Run("linux host", func(t *testing.T) {
		withHost(t, Linux)
		if got := PlatformNative.LibraryFile("foo"); got != "libfoo.so" {
			t.Errorf("LibraryFile() = %q, want libfoo.so", got)
		}
		if got := PlatformNative.Key(); got != "native" {
			t.Errorf("Key() = %q, want native", got)
		}
		if got := HostTriple(); got != "linux-x64" {
			t.Errorf("HostTriple() = %q", got)
		}
	})

	t.Run("darwin host", func(t *testing.T) {
		withHost(t, Darwin)
		if got := Host(); got != PlatformMacOS {
			t.Errorf("Host() = %v, want macos", got)
		}
		if got := HostTriple(); got != "macos-aarch64" {
			t.Errorf("HostTriple() = %q", got)
		}
	})
}

func TestParse(t *testing.T) {
	for _, p := range All() {
		got, err := Parse(p.Key())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", p.Key(), err)
		}
		if got != p {
			t.Errorf("Parse(%q) = %v, want %v", p.Key(), got, p)
		}
	}

	if got, err := Parse(" MacOS "); err != nil || got != PlatformMacOS {
		t.Errorf("Parse(\" MacOS \") = %v, %v", got, err)
	}

	if _, err := Parse("amiga"); err == nil {
		t.Error("Parse(amiga) should fail")
	}
}

func TestDistributedExcludesNative(t *testing.T) {
	if slices.Contains(Distributed(), PlatformNative) {
		t.Error("Distributed() must not contain the native platform")
	}
	if len(All()) != 4 {
		t.Errorf("All() has %d entries, want 4", len(All()))
	}
}

func TestStripLibPrefix(t *testing.T) {
	tests := map[string]string{
		"libfoo.so":   "foo.so",
		"libfoo.dll":  "foo.dll",
		"foo.dylib":   "foo.dylib",
		"liblibx.so":  "libx.so",
		"calibrate.a": "calibrate.a",
	}
	for in, want := range tests {
		if got := StripLibPrefix(in); got != want {
			t.Errorf("StripLibPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"con", true},
		{"CON", true},
		{"Con.nrm", true},
		{"nul.thunderstore.zip", true},
		{"com9", true},
		{"lpt1.txt", true},
		{"console", false},
		{"mymod", false},
		{"com10", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWindowsReservedName(tt.input); got != tt.expected {
			t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestHostCommand(t *testing.T) {
	t.Parallel()

	name, args := HostCommand(SandboxNone, "make", []string{"A=1"})
	if name != "make" || !slices.Equal(args, []string{"A=1"}) {
		t.Errorf("no sandbox: got %q %v", name, args)
	}

	name, args = HostCommand(SandboxFlatpak, "make", []string{"A=1"})
	if name != "flatpak-spawn" || !slices.Equal(args, []string{"--host", "make", "A=1"}) {
		t.Errorf("flatpak: got %q %v", name, args)
	}

	name, args = HostCommand(SandboxSnap, "git", nil)
	if name != "snap" || !slices.Equal(args, []string{"run", "--shell", "git"}) {
		t.Errorf("snap: got %q %v", name, args)
	}
}

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	missing := func(string) error { return errors.New("missing") }
	present := func(string) error { return nil }
	noEnv := func(string) string { return "" }
	snapEnv := func(k string) string {
		if k == "SNAP_NAME" {
			return "modpack"
		}
		return ""
	}

	if got := detectSandboxFrom(noEnv, missing); got != SandboxNone {
		t.Errorf("got %q, want none", got)
	}
	if got := detectSandboxFrom(snapEnv, missing); got != SandboxSnap {
		t.Errorf("got %q, want snap", got)
	}
	if got := detectSandboxFrom(snapEnv, present); got != SandboxFlatpak {
		t.Errorf("got %q, want flatpak (takes precedence)", got)
	}
}
