// SPDX-License-Identifier: MPL-2.0

package thunderstore

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// ArchiveSuffix ends every package archive name.
	ArchiveSuffix = ".thunderstore.zip"
	// ImagesDirName is the staging subdirectory kept out of the archive.
	ImagesDirName = "images"
)

// ArchivePath returns <root>/<key>.thunderstore.zip.
func ArchivePath(root, key string) string {
	return filepath.Join(root, key+ArchiveSuffix)
}

// CreateArchive zips the top-level entries of stagingDir into dst. Files are
// stored under their bare name and directories recursively under their own
// name; the images directory is skipped. dst is removed when archiving fails.
func CreateArchive(stagingDir, dst string) (err error) {
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		return fmt.Errorf("failed to read staging directory: %w", err)
	}

	zipFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, entry := range entries {
		if entry.Name() == ImagesDirName {
			continue
		}
		src := filepath.Join(stagingDir, entry.Name())
		if entry.IsDir() {
			err = addDir(zipWriter, stagingDir, src)
		} else {
			err = addFile(zipWriter, src, entry.Name())
		}
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func addDir(w *zip.Writer, base, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			_, err := w.Create(name + "/")
			return err
		}
		return addFile(w, path, name)
	})
}

func addFile(w *zip.Writer, path, name string) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := w.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(dst, src)
	return err
}
