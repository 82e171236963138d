// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"modpack-cli/internal/artifact"
	"modpack-cli/internal/build"
	"modpack-cli/internal/config"
	"modpack-cli/internal/testutil"
	"modpack-cli/pkg/modproject"
)

const extlibModToml = `[inputs]
mod_filename = "mymod"

[manifest]
id = "mymod_id"
display_name = "My Mod"
version = "1.2.0"
description = "Extended."

[extlib_compiling]
library_name = "mymod_extlib"
windows_release_build_preset = "zig-windows-x64-Release"
macos_release_build_preset = "zig-macos-aarch64-Release"
linux_release_build_preset = "zig-linux-x64-Release"
`

func noWebsite(context.Context, *modproject.Project) *string { return nil }

func newPipeline(t *testing.T, modToml string) (*Pipeline, *modproject.Project) {
	t.Helper()
	root := t.TempDir()
	project, err := modproject.Load(testutil.WriteModToml(t, root, modToml))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	cfg := config.DefaultConfig(project)

	a := NewAssembler(project, artifact.NewLocator(project, cfg), &Report{}, nil)
	a.Website = noWebsite
	return &Pipeline{Config: cfg, Assembler: a}, project
}

func TestPipelineEndToEnd(t *testing.T) {
	p, project := newPipeline(t, testutil.MinimalModToml)
	testutil.MustWriteFile(t, filepath.Join(project.Root, "build", "mymod.nrm"), "payload")

	out, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.State != StateArchived {
		t.Fatalf("State = %v, want archived; report: %+v", out.State, p.Assembler.Report.Entries())
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v", out.Err())
	}

	wantArchive := filepath.Join(project.Root, "My_Mod.thunderstore.zip")
	if out.ArchivePath != wantArchive {
		t.Errorf("ArchivePath = %q, want %q", out.ArchivePath, wantArchive)
	}

	var manifest map[string]any
	data := testutil.MustReadFile(t, filepath.Join(project.Root, "dist", "manifest.json"))
	if err := json.Unmarshal([]byte(data), &manifest); err != nil {
		t.Fatal(err)
	}
	if manifest["name"] != "My_Mod" || manifest["version_number"] != "1.2.0" {
		t.Errorf("manifest = %v", manifest)
	}

	got := testutil.ZipNames(t, wantArchive)
	want := []string{"CHANGELOG.md", "README.md", "manifest.json", "mymod.nrm"}
	if !slices.Equal(got, want) {
		t.Errorf("archive members = %v, want %v", got, want)
	}
}

func TestPipelineArchiveKeyedByID(t *testing.T) {
	p, project := newPipeline(t, testutil.MinimalModToml)
	p.ArchiveKey = KeyModID
	testutil.MustWriteFile(t, filepath.Join(project.Root, "build", "mymod.nrm"), "payload")

	out, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if want := filepath.Join(project.Root, "mymod.thunderstore.zip"); out.ArchivePath != want {
		t.Errorf("ArchivePath = %q, want %q", out.ArchivePath, want)
	}
}

func TestPipelineIncomplete(t *testing.T) {
	p, project := newPipeline(t, testutil.MinimalModToml)

	out, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.State != StateIncomplete {
		t.Fatalf("State = %v, want reported-incomplete", out.State)
	}
	if !errors.Is(out.Err(), ErrMissingArtifact) {
		t.Errorf("Err() = %v, want ErrMissingArtifact", out.Err())
	}
	if len(out.Missing) != 1 {
		t.Errorf("Missing = %v", out.Missing)
	}
	if testutil.Exists(filepath.Join(project.Root, "My_Mod.thunderstore.zip")) {
		t.Error("archive created for an incomplete package")
	}
	if !testutil.Exists(filepath.Join(project.Root, "dist", "manifest.json")) {
		t.Error("staging directory should stay populated for inspection")
	}
}

func TestPipelineNativeLibraries(t *testing.T) {
	p, project := newPipeline(t, extlibModToml)
	testutil.MustWriteFile(t, filepath.Join(project.Root, "build", "mymod.nrm"), "payload")

	out, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.State != StateIncomplete || len(out.Missing) != 3 {
		t.Fatalf("State = %v, Missing = %v; want three missing libraries", out.State, out.Missing)
	}

	buildDir := filepath.Join(project.Root, "build")
	testutil.MustWriteFile(t, filepath.Join(buildDir, "zig-windows-x64-Release", "bin", "libmymod_extlib.dll"), "dll")
	testutil.MustWriteFile(t, filepath.Join(buildDir, "zig-macos-aarch64-Release", "lib", "libmymod_extlib.dylib"), "dylib")
	testutil.MustWriteFile(t, filepath.Join(buildDir, "zig-linux-x64-Release", "lib", "libmymod_extlib.so"), "so")
	testutil.MustWriteFile(t, filepath.Join(project.Root, "thumb.png"), "png")
	testutil.MustWriteFile(t, filepath.Join(project.Root, "dist", "images", "shot.png"), "png")

	p.Assembler.Report = &Report{}
	out, err = p.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	if out.State != StateArchived {
		t.Fatalf("State = %v, want archived", out.State)
	}

	got := testutil.ZipNames(t, out.ArchivePath)
	want := []string{
		"CHANGELOG.md", "README.md", "icon.png", "manifest.json",
		"mymod.nrm", "mymod_extlib.dll", "mymod_extlib.dylib", "mymod_extlib.so",
	}
	if !slices.Equal(got, want) {
		t.Errorf("archive members = %v, want %v", got, want)
	}
}

func TestPipelineBuilds(t *testing.T) {
	p, project := newPipeline(t, testutil.MinimalModToml)
	tool := testutil.WriteScript(t, t.TempDir(), "fake-make",
		"mkdir -p build\necho \"$@\" > build/params.txt\necho payload > build/mymod.nrm\n")
	p.Invoker = &build.Invoker{Tool: tool, Dir: project.Root}
	p.Params = []build.Param{{Key: "EXTRA", Value: "1"}}

	out, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.State != StateArchived {
		t.Fatalf("State = %v, want archived", out.State)
	}

	params := testutil.MustReadFile(t, filepath.Join(project.Root, "build", "params.txt"))
	for _, want := range []string{"EXTLIB_CMAKE_PRESET_GROUP=Release", "MOD_COMPILER=clang", "EXTRA=1"} {
		if !slices.Contains(strings.Fields(params), want) {
			t.Errorf("build params %q missing %s", params, want)
		}
	}
}

func TestPipelineBuildFailure(t *testing.T) {
	p, project := newPipeline(t, testutil.MinimalModToml)
	tool := testutil.WriteScript(t, t.TempDir(), "fake-make", "exit 3\n")
	p.Invoker = &build.Invoker{Tool: tool, Dir: project.Root}

	out, err := p.Run(context.Background())
	if !errors.Is(err, build.ErrBuildFailure) {
		t.Fatalf("Run() error = %v, want ErrBuildFailure", err)
	}
	var failure *build.Failure
	if !errors.As(err, &failure) || failure.ExitCode != 3 {
		t.Errorf("failure = %+v, want exit code 3", failure)
	}
	if out.State != StateConfigured {
		t.Errorf("State = %v, want configured", out.State)
	}
	if testutil.Exists(filepath.Join(project.Root, "dist")) {
		t.Error("staging directory created after a failed build")
	}
}

func TestParseArchiveKey(t *testing.T) {
	for in, want := range map[string]ArchiveKey{"": KeyManifestName, "name": KeyManifestName, "ID": KeyModID} {
		got, err := ParseArchiveKey(in)
		if err != nil || got != want {
			t.Errorf("ParseArchiveKey(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseArchiveKey("slug"); err == nil {
		t.Error("ParseArchiveKey(slug) should fail")
	}
}
