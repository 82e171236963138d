// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"modpack-cli/internal/artifact"
	"modpack-cli/internal/thunderstore"
	"modpack-cli/pkg/modproject"
	"modpack-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

// StagingDirName is the staging directory under the project root.
const StagingDirName = "dist"

type (
	// Assembler populates the staging directory.
	Assembler struct {
		Project    *modproject.Project
		Locator    *artifact.Locator
		StagingDir string
		// Flavor selects which library builds are packaged.
		Flavor modproject.Flavor
		// Website resolves the manifest website_url (default thunderstore.ResolveWebsite).
		Website thunderstore.WebsiteResolver
		Report  *Report
		Logger  *log.Logger
	}

	// Result summarizes one assembly.
	Result struct {
		// ManifestName is the package name stored in manifest.json.
		ManifestName string
		// Collected is true when every required artifact was staged.
		Collected bool
	}
)

// NewAssembler returns an assembler staging into <root>/dist with release libraries.
func NewAssembler(project *modproject.Project, locator *artifact.Locator, report *Report, logger *log.Logger) *Assembler {
	return &Assembler{
		Project:    project,
		Locator:    locator,
		StagingDir: filepath.Join(project.Root, StagingDirName),
		Flavor:     modproject.FlavorRelease,
		Website:    thunderstore.ResolveWebsite,
		Report:     report,
		Logger:     logger,
	}
}

// Assemble creates or refreshes every package file in the staging directory.
// Missing artifacts are recorded in the report; only failures to write the
// staging directory itself are returned.
func (a *Assembler) Assemble(ctx context.Context) (*Result, error) {
	report := a.report()
	logger := a.logger()

	if !isDir(a.StagingDir) {
		report.Skip(fmt.Sprintf("Creating package directory at '%s'", a.StagingDir))
		if err := os.MkdirAll(a.StagingDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
	}

	name, err := a.writeManifest(ctx)
	if err != nil {
		return nil, err
	}

	readme := filepath.Join(a.StagingDir, thunderstore.ReadmeFileName)
	if written, err := writeIfAbsent(readme, thunderstore.Readme(a.Project)); err != nil {
		return nil, err
	} else if written {
		report.Record(fmt.Sprintf("Created readme from description at '%s'", readme), true)
	}

	changelog := filepath.Join(a.StagingDir, thunderstore.ChangelogFileName)
	if written, err := writeIfAbsent(changelog, thunderstore.Changelog()); err != nil {
		return nil, err
	} else if written {
		report.Record(fmt.Sprintf("Created changelog at '%s'", changelog), true)
	}

	if err := a.stageIcon(); err != nil {
		return nil, err
	}

	payload := a.Locator.ModPayload()
	if err := a.stageRequired(payload, filepath.Base(payload), "mod", "build the mod first"); err != nil {
		return nil, err
	}

	for _, lib := range a.Locator.Libraries(platform.Distributed(), a.Flavor) {
		if err := a.stageRequired(lib.Source, lib.FileName, "library", "build the native library first"); err != nil {
			return nil, err
		}
	}

	logger.Debug("assembly finished", "staging", a.StagingDir, "failed", report.Failed())
	return &Result{ManifestName: name, Collected: !report.Failed()}, nil
}

func (a *Assembler) writeManifest(ctx context.Context) (string, error) {
	website := a.Website
	if website == nil {
		website = thunderstore.ResolveWebsite
	}
	manifest := thunderstore.NewManifest(a.Project, website(ctx, a.Project))

	path := filepath.Join(a.StagingDir, thunderstore.ManifestFileName)
	name, mode, err := thunderstore.WriteManifest(path, manifest)
	if err != nil {
		return "", err
	}
	a.report().Record(fmt.Sprintf("%s manifest at '%s'", mode, path), true)
	return name, nil
}

func (a *Assembler) stageIcon() error {
	dst := filepath.Join(a.StagingDir, thunderstore.IconFileName)
	if isFile(dst) {
		return nil
	}

	src := filepath.Join(a.Project.Root, thunderstore.ThumbnailFileName)
	copied, err := copyIfExists(src, dst)
	if err != nil {
		return err
	}
	if copied {
		a.report().RecordOptional(fmt.Sprintf("Copied icon from '%s' to '%s'", src, dst), true)
	} else {
		a.report().RecordOptional(fmt.Sprintf("No file '%s' exists. You may need to create an icon manually", src), false)
	}
	return nil
}

func (a *Assembler) stageRequired(src, fileName, kind, hint string) error {
	dst := filepath.Join(a.StagingDir, fileName)
	copied, err := copyIfExists(src, dst)
	if err != nil {
		return err
	}
	if copied {
		a.report().Record(fmt.Sprintf("Copied %s from '%s' to '%s'", kind, src, dst), true)
	} else {
		a.report().Record(fmt.Sprintf("No file '%s' exists. You need to %s", src, hint), false)
		a.logger().Warn("missing artifact", "path", src)
	}
	return nil
}

func (a *Assembler) report() *Report {
	if a.Report == nil {
		a.Report = &Report{}
	}
	return a.Report
}

func (a *Assembler) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.New(io.Discard)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
