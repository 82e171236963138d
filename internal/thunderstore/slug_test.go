// SPDX-License-Identifier: MPL-2.0

package thunderstore

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Mod! v2", "My_Mod_v2"},
		{"  padded  ", "padded"},
		{"snake__case  and\ttabs", "snake_case_and_tabs"},
		{"Zelda: Majora's Mask", "Zelda_Majoras_Mask"},
		{"émoji 🎉 mod", "moji_mod"},
		{"Mod - Extra", "Mod_Extra"},
		{"a_!_b", "a_b"},
		{"x\u00a0y", "x_y"},
		{"x\u2003y", "x_y"},
		{"v\vtab", "v_tab"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9_]*$`)
	inputs := []string{"My Mod! v2", " a _ b ", "__x__", "émoji 🎉 mod", "a-b-c", "tab\there", "Mod - Extra", "a_!_b", "x\u00a0y", "v\vtab"}

	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
		if !valid.MatchString(once) {
			t.Errorf("Slugify(%q) = %q contains invalid characters", in, once)
		}
	}
}

func TestSelectDescription(t *testing.T) {
	tests := []struct {
		name  string
		long  string
		short string
		want  string
	}{
		{"short fallback for empty", "", "Short.", "Short."},
		{"short fallback for blank", "\n\n", "Short.", "Short."},
		{"newlines collapsed", "Line one.\n\nLine two.\n", "Short.", "Line one. Line two."},
		{"exactly max length", strings.Repeat("a", MaxDescriptionLength), "Short.", strings.Repeat("a", MaxDescriptionLength)},
		{"too long", strings.Repeat("a", MaxDescriptionLength+1), "  Short. ", "  Short. "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectDescription(tt.long, tt.short); got != tt.want {
				t.Errorf("SelectDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
