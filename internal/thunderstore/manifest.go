// SPDX-License-Identifier: MPL-2.0

package thunderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"modpack-cli/internal/vcs"
	"modpack-cli/pkg/modproject"
)

const (
	// ManifestFileName is the manifest file inside the staging directory.
	ManifestFileName = "manifest.json"

	keyName         = "name"
	keyDependencies = "dependencies"
)

// ErrInvalidManifest is returned when an existing manifest.json is not a JSON object.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest is the Thunderstore package manifest. Field order is the order
	// written to disk.
	Manifest struct {
		Name          string   `json:"name"`
		VersionNumber string   `json:"version_number"`
		WebsiteURL    *string  `json:"website_url"`
		Description   string   `json:"description"`
		Dependencies  []string `json:"dependencies"`
	}

	// WebsiteResolver finds the website URL of a project, nil when unknown.
	WebsiteResolver func(ctx context.Context, project *modproject.Project) *string

	// ManifestMode tells whether WriteManifest created or updated the file.
	ManifestMode int
)

const (
	// ManifestCreated means manifest.json did not exist and was written whole.
	ManifestCreated ManifestMode = iota + 1
	// ManifestUpdated means the recomputed fields were merged onto an existing file.
	ManifestUpdated
)

// String returns "Creating" or "Updating".
func (m ManifestMode) String() string {
	if m == ManifestUpdated {
		return "Updating"
	}
	return "Creating"
}

// ResolveWebsite uses the explicit website_url of mod.toml, falling back to
// the origin remote of the project's repository.
func ResolveWebsite(ctx context.Context, project *modproject.Project) *string {
	if project.Manifest.WebsiteURL != "" {
		url := project.Manifest.WebsiteURL
		return &url
	}
	if url, ok := vcs.RemoteURL(ctx, project.Root); ok {
		return &url
	}
	return nil
}

// NewManifest derives the manifest of project.
func NewManifest(project *modproject.Project, website *string) Manifest {
	return Manifest{
		Name:          Slugify(project.Manifest.DisplayName),
		VersionNumber: project.Manifest.Version,
		WebsiteURL:    website,
		Description:   SelectDescription(project.Manifest.Description, project.Manifest.ShortDescription),
		Dependencies:  []string{},
	}
}

// CreateManifest writes m to path, replacing any existing file.
func CreateManifest(path string, m Manifest) error {
	data, err := marshalIndent(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// UpdateManifest merges m onto the manifest at path. name and dependencies
// are never touched once published; unknown keys and their order survive.
// It returns the name stored in the file, or "" when the file has none.
func UpdateManifest(path string, m Manifest) (name string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest: %w", err)
	}

	current, err := decodeObject(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidManifest, path, err)
	}
	if raw, ok := current.values[keyName]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return "", fmt.Errorf("%w: %s: name is not a string: %w", ErrInvalidManifest, path, err)
		}
	}

	fresh, err := marshalIndent(m)
	if err != nil {
		return "", err
	}
	update, err := decodeObject(fresh)
	if err != nil {
		return "", err
	}
	update.delete(keyName)
	update.delete(keyDependencies)
	current.merge(update)

	out, err := current.marshalIndent()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return name, nil
}

// WriteManifest creates the manifest at path when absent and updates it
// otherwise. It returns the effective package name: the stored name after an
// update, m.Name after a create or when the stored manifest has no name.
func WriteManifest(path string, m Manifest) (name string, mode ManifestMode, err error) {
	info, statErr := os.Stat(path)
	switch {
	case errors.Is(statErr, fs.ErrNotExist):
		if err := CreateManifest(path, m); err != nil {
			return "", ManifestCreated, err
		}
		return m.Name, ManifestCreated, nil
	case statErr != nil:
		return "", 0, fmt.Errorf("failed to stat manifest: %w", statErr)
	case info.IsDir():
		return "", 0, fmt.Errorf("%w: %s is a directory", ErrInvalidManifest, path)
	}

	name, err = UpdateManifest(path, m)
	if err != nil {
		return "", ManifestUpdated, err
	}
	if name == "" {
		name = m.Name
	}
	return name, ManifestUpdated, nil
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
