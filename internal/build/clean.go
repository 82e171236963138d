// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// recompilerBuildDir is the build tree of the vendored N64Recomp submodule.
var recompilerBuildDir = filepath.Join("N64Recomp", "build")

// Clean removes the mod build directory and the recompiler's build tree.
// Missing directories are not an error. It returns the directories that existed.
func Clean(root, buildDir string) ([]string, error) {
	var removed []string
	for _, dir := range []string{buildDir, filepath.Join(root, recompilerBuildDir)} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}
	return removed, nil
}
