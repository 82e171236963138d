// SPDX-License-Identifier: MPL-2.0

package assets

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"modpack-cli/internal/testutil"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	testutil.MustClose(t, w)
	testutil.MustClose(t, f)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, ArchiveFileName)
	writeZip(t, archive, map[string]string{
		"audio/":         "",
		"audio/beep.wav": "RIFF",
		"readme.txt":     "assets",
	})
	dest := filepath.Join(dir, "assets")

	extracted, err := Extract(archive, dest)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if !extracted {
		t.Fatal("Extract() did not extract into a missing directory")
	}
	if got := testutil.MustReadFile(t, filepath.Join(dest, "audio", "beep.wav")); got != "RIFF" {
		t.Errorf("audio/beep.wav = %q", got)
	}

	extracted, err = Extract(archive, dest)
	if err != nil || extracted {
		t.Errorf("second Extract() = %v, %v; want skipped", extracted, err)
	}
}

func TestExtractRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, ArchiveFileName)
	writeZip(t, archive, map[string]string{"../evil.txt": "x"})
	dest := filepath.Join(dir, "assets")

	_, err := Extract(archive, dest)
	if !errors.Is(err, ErrUnsafePath) {
		t.Fatalf("Extract() error = %v, want ErrUnsafePath", err)
	}
	if testutil.Exists(filepath.Join(dir, "evil.txt")) {
		t.Error("file written outside the destination")
	}
	if testutil.Exists(dest) {
		t.Error("destination left behind after failure")
	}
}

func TestExtractMissingArchive(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "assets")

	if _, err := Extract(filepath.Join(dir, ArchiveFileName), dest); err == nil {
		t.Fatal("Extract() succeeded without an archive")
	}
	if testutil.Exists(dest) {
		t.Error("destination created without an archive")
	}
}
