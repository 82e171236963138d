// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"modpack-cli/internal/artifact"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

// PortableMarker is the empty file that keeps the runtime self-contained.
const PortableMarker = "portable.txt"

// Deployment lists what DeployRuntime did.
type Deployment struct {
	Copied  []string
	Skipped []string
}

// DeployRuntime copies freshly built artifacts into <runtime>/mods. With
// native set only the host build of each library is deployed; otherwise the
// Windows, macOS and Linux builds are. Missing sources are skipped.
func DeployRuntime(loc *artifact.Locator, flavor modproject.Flavor, native bool, logger *log.Logger) (*Deployment, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	modsDir := loc.RuntimeModsDir()
	if err := os.MkdirAll(modsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", modsDir, err)
	}

	marker := filepath.Join(loc.RuntimeDir, PortableMarker)
	if written, err := writeIfAbsent(marker, ""); err != nil {
		return nil, err
	} else if written {
		logger.Info("created portable marker", "path", marker)
	}

	d := &Deployment{}
	deploy := func(src, fileName string) error {
		if src == "" {
			return nil
		}
		dst := filepath.Join(modsDir, fileName)
		copied, err := copyIfExists(src, dst)
		if err != nil {
			return err
		}
		if copied {
			logger.Info("copied", "from", src, "to", dst)
			d.Copied = append(d.Copied, dst)
		} else {
			logger.Warn("skipped missing file", "path", src)
			d.Skipped = append(d.Skipped, src)
		}
		return nil
	}

	payload := loc.ModPayload()
	if err := deploy(payload, filepath.Base(payload)); err != nil {
		return d, err
	}

	platforms := platform.Distributed()
	if native {
		platforms = []platform.Platform{platform.PlatformNative}
	}
	for _, lib := range loc.Libraries(platforms, flavor) {
		if err := deploy(lib.Source, lib.FileName); err != nil {
			return d, err
		}
		if err := deploy(lib.DebugSource, lib.DebugFileName); err != nil {
			return d, err
		}
	}
	return d, nil
}
