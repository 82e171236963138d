// SPDX-License-Identifier: MPL-2.0

// Package assets unpacks the project's bundled asset archive.
package assets

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveFileName is the asset archive at the project root.
const ArchiveFileName = "assets_archive.zip"

// ErrUnsafePath is returned for archive members that would land outside the
// destination directory.
var ErrUnsafePath = errors.New("invalid path in archive")

// Extract unpacks archivePath into destDir when destDir does not exist yet.
// It reports whether anything was extracted. A failed extraction removes
// destDir again.
func Extract(archivePath, destDir string) (extracted bool, err error) {
	absDestDir, err := filepath.Abs(destDir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve destination directory: %w", err)
	}
	if _, statErr := os.Stat(absDestDir); statErr == nil {
		return false, nil
	}

	zipReader, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = zipReader.Close()
		return false, fmt.Errorf("%w: %w", ErrUnsafePath, err)
	}
	if err != nil {
		return false, fmt.Errorf("failed to open asset archive: %w", err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err = os.MkdirAll(absDestDir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create destination directory: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(absDestDir)
		}
	}()

	for _, file := range zipReader.File {
		destPath := filepath.Join(absDestDir, filepath.FromSlash(file.Name))

		relPath, relErr := filepath.Rel(absDestDir, destPath)
		if relErr != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
			return false, fmt.Errorf("%w: %s", ErrUnsafePath, file.Name)
		}

		if file.FileInfo().IsDir() {
			if err = os.MkdirAll(destPath, 0o755); err != nil {
				return false, fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		if err = os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return false, fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err = extractFile(file, destPath); err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return true, nil
}

func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: the asset archive ships with the project
	_, err = io.Copy(destFile, rc)
	return err
}
