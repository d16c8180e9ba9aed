package main

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed style/visual.css
var defaultStylesheet string

// loadStylesheet returns the stylesheet at path, or the embedded default when
// path is empty.
func loadStylesheet(path string) (string, error) {
	if path == "" {
		return defaultStylesheet, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading stylesheet %s: %w", path, err)
	}
	return string(b), nil
}
