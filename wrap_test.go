package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestWrapLabel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{"two lines", "This is a long label text", 16, []string{"This is a long", "label text"}},
		{"single word", "Short", 16, []string{"Short"}},
		{"empty", "", 16, []string{""}},
		{"only spaces", "   ", 16, []string{""}},
		{"overlong first word closes the empty line", "Supercalifragilistic yes", 16, []string{"", "Supercalifragilistic", "yes"}},
		{"overlong middle word", "a Supercalifragilistic b", 16, []string{"a", "Supercalifragilistic", "b"}},
		{"collapses whitespace", "one   two\tthree", 16, []string{"one two three"}},
		{"exact fit with separator", "abcdefghijklmno", 16, []string{"abcdefghijklmno"}},
		{"custom budget", "aa bb cc", 4, []string{"aa", "bb", "cc"}},
		{"non-positive budget uses default", "This is a long label text", 0, []string{"This is a long", "label text"}},
		{"counts runes", "ééééé ééééé ééééé", 12, []string{"ééééé ééééé", "ééééé"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLabel(tt.text, tt.maxLen)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrapLabel(%q, %d) mismatch (-want +got):\n%s", tt.text, tt.maxLen, diff)
			}
		})
	}
}

func TestWrapLabelPreservesWords(t *testing.T) {
	text := "Quarterly revenue target reached across all northern regions despite headwinds"
	lines := wrapLabel(text, defaultLabelLineLength)

	if diff := cmp.Diff(strings.Fields(text), strings.Fields(strings.Join(lines, " "))); diff != "" {
		t.Errorf("word sequence changed (-want +got):\n%s", diff)
	}
	for i, line := range lines {
		if line != strings.TrimSpace(line) {
			t.Errorf("line %d has surrounding spaces: %q", i, line)
		}
		if n := utf8.RuneCountInString(line); n > defaultLabelLineLength && strings.Contains(line, " ") {
			t.Errorf("line %d exceeds budget with %d characters: %q", i, n, line)
		}
	}
}
