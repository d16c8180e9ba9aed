package main

import (
	"strings"
	"unicode/utf8"
)

// defaultLabelLineLength is the character budget of one caption line.
const defaultLabelLineLength = 16

// wrapLabel splits text into lines greedily. Words are added to the current
// line while the line, including its trailing separator and the candidate
// word, stays within maxLen characters. Words are never split, so a word
// longer than maxLen occupies a line of its own; when it is the first word the
// still-empty current line is closed before it. The result always holds at
// least one line.
func wrapLabel(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = defaultLabelLineLength
	}
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(line.String())+utf8.RuneCountInString(word) > maxLen {
			lines = append(lines, strings.TrimSpace(line.String()))
			line.Reset()
		}
		line.WriteString(word)
		line.WriteByte(' ')
	}
	return append(lines, strings.TrimSpace(line.String()))
}
