// SPDX-License-Identifier: MPL-2.0

package thunderstore

import "modpack-cli/pkg/modproject"

const (
	// ReadmeFileName is the package readme.
	ReadmeFileName = "README.md"
	// ChangelogFileName is the package changelog.
	ChangelogFileName = "CHANGELOG.md"
	// IconFileName is the package icon.
	IconFileName = "icon.png"
	// ThumbnailFileName is the icon source at the project root.
	ThumbnailFileName = "thumb.png"

	initialChangelog = "# CHANGELOG\n\n## Version 1.0.0\n\n* Initial release\n"
)

// Readme renders README.md from the display name and the full description.
func Readme(project *modproject.Project) string {
	return "# " + project.Manifest.DisplayName + "\n\n" + project.Manifest.Description
}

// Changelog returns the CHANGELOG.md written for a first release.
func Changelog() string {
	return initialChangelog
}
