// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"modpack-cli/internal/build"
	"modpack-cli/internal/config"
	"modpack-cli/internal/issue"
	"modpack-cli/internal/thunderstore"

	"github.com/charmbracelet/log"
)

// ErrMissingArtifact is returned by Outcome.Err when a required file was not collected.
var ErrMissingArtifact = errors.New("missing artifact")

// Pipeline states, in the order a run reaches them.
const (
	StateConfigured State = iota
	StateBuilt
	StateStaged
	StateArchived
	// StateIncomplete ends a run whose collection failed.
	StateIncomplete
)

const (
	// KeyManifestName names the archive after manifest.json's name.
	KeyManifestName ArchiveKey = iota
	// KeyModID names the archive after the mod id.
	KeyModID
)

type (
	// State is the last stage a pipeline run reached.
	State int

	// ArchiveKey selects what the archive file is named after.
	ArchiveKey int

	// Pipeline runs build, assembly and archiving in order.
	Pipeline struct {
		Config *config.UserBuildConfig
		// Invoker builds the project. A nil Invoker skips the build.
		Invoker *build.Invoker
		// Params are extra build parameters overriding the derived ones.
		Params     []build.Param
		Assembler  *Assembler
		ArchiveKey ArchiveKey
		Logger     *log.Logger
	}

	// Outcome describes a finished run.
	Outcome struct {
		State  State
		Result *Result
		// ArchivePath is set once the archive has been written.
		ArchivePath string
		Missing     []string
	}
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateBuilt:
		return "built"
	case StateStaged:
		return "staged"
	case StateArchived:
		return "archived"
	case StateIncomplete:
		return "reported-incomplete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseArchiveKey accepts "name" or "id".
func ParseArchiveKey(s string) (ArchiveKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return KeyManifestName, nil
	case "id":
		return KeyModID, nil
	default:
		return 0, fmt.Errorf("invalid archive key %q (expected name or id)", s)
	}
}

// Run executes the pipeline. Build failures and staging I/O errors are
// returned; an incomplete collection is not an error but stops before the
// archive and yields StateIncomplete.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{State: StateConfigured}
	logger := p.logger()
	a := p.Assembler

	if p.Invoker != nil {
		params := build.Merge(build.Overrides(p.Config, a.Flavor), p.Params)
		logger.Info("building", "flavor", a.Flavor, "params", len(params))
		if err := p.Invoker.Run(ctx, params); err != nil {
			return out, err
		}
	}
	out.State = StateBuilt

	result, err := a.Assemble(ctx)
	if err != nil {
		return out, issue.WrapWithOperation(err, "stage package")
	}
	out.State = StateStaged
	out.Result = result

	report := a.report()
	if !result.Collected {
		out.State = StateIncomplete
		out.Missing = report.Missing()
		report.Skip("Files are missing. Archive was not created.")
		return out, nil
	}

	key := result.ManifestName
	if p.ArchiveKey == KeyModID {
		key = a.Project.PackageID()
	}
	path := thunderstore.ArchivePath(a.Project.Root, key)
	report.Skip("Fully collected. Zipping mod package.")
	if err := thunderstore.CreateArchive(a.StagingDir, path); err != nil {
		return out, issue.WrapWithOperation(err, "create archive")
	}
	report.Record(fmt.Sprintf("Created archive at '%s'", path), true)

	out.State = StateArchived
	out.ArchivePath = path
	return out, nil
}

// Err returns an error wrapping ErrMissingArtifact for an incomplete run.
func (o *Outcome) Err() error {
	if o.State != StateIncomplete {
		return nil
	}
	return fmt.Errorf("%w: %d required file(s) not collected, archive not created", ErrMissingArtifact, len(o.Missing))
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.New(io.Discard)
}
