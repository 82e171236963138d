// SPDX-License-Identifier: MPL-2.0

package thunderstore

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest description Thunderstore accepts.
const MaxDescriptionLength = 256

var (
	separatorRun = regexp.MustCompile(`[\s\v\p{Z}_]+`)
	nonSlugChars = regexp.MustCompile(`[^A-Za-z0-9_\s\v\p{Z}]`)
	newlineRun   = regexp.MustCompile(`\n+`)
)

// Slugify turns a display name into a package name: characters other than
// letters, digits, underscores and whitespace are dropped, then whitespace
// and underscore runs become one underscore. Unicode spaces count as
// whitespace. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = strings.TrimSpace(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	return separatorRun.ReplaceAllString(s, "_")
}

// SelectDescription returns long with newline runs collapsed to single
// spaces when the result is non-empty and at most MaxDescriptionLength
// characters. Otherwise short is returned unchanged.
func SelectDescription(long, short string) string {
	d := strings.TrimSpace(newlineRun.ReplaceAllString(long, " "))
	if n := utf8.RuneCountInString(d); n > 0 && n <= MaxDescriptionLength {
		return d
	}
	return short
}
