package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// exportRequest describes one render of an update file.
type exportRequest struct {
	InputFile string
	Format    string
	Viewport  Viewport // fallback and override source
	Override  bool     // force Viewport over the one in the file
}

// renderUpdateFile loads the updates of one file, replays them against a
// freshly mounted gauge and writes the final state in the requested format.
func renderUpdateFile(ctx context.Context, cfg *Config, stylesheet string, req exportRequest, w io.Writer) error {
	Logger().Info("reading update file", "path", req.InputFile)
	data, err := os.ReadFile(req.InputFile)
	if err != nil {
		return fmt.Errorf("reading update file %s: %w", req.InputFile, err)
	}
	updates, err := decodeUpdates(data, req.InputFile, req.Viewport)
	if err != nil {
		return err
	}
	if req.Override {
		for i := range updates {
			updates[i].Viewport = req.Viewport
		}
	}

	session, err := mountGauge()
	if err != nil {
		return err
	}
	session.replay(updates)
	return exportSession(ctx, cfg, stylesheet, session, req.Format, w)
}

// exportSession writes the gauge in its current state.
func exportSession(ctx context.Context, cfg *Config, stylesheet string, session *hostSession, format string, w io.Writer) error {
	renderer := session.renderer()
	vp := session.visual.Viewport()
	frame := renderer.Frame()

	switch format {
	case "svg":
		svg, err := GenerateSVG(renderer.Surface(), stylesheet, vp)
		if err != nil {
			return fmt.Errorf("SVG generation failed: %w", err)
		}
		if _, err := io.WriteString(w, svg); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
	case "html":
		page, err := generateHTML(session.container, stylesheet, vp)
		if err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		if _, err := io.WriteString(w, page); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	case "png", "jpg", "jpeg":
		if !frame.Visible {
			Logger().Warn("gauge is hidden, writing an empty image")
			return rasterizeFrame(frame, vp, format, cfg.Output.JPEGQuality, w)
		}
		if cfg.Output.Renderer == rendererNative {
			return rasterizeFrame(frame, vp, format, cfg.Output.JPEGQuality, w)
		}
		svg, err := GenerateSVG(renderer.Surface(), stylesheet, vp)
		if err != nil {
			return fmt.Errorf("failed to generate intermediate SVG: %w", err)
		}
		return generateImage(ctx, svg, format, cfg.Output.JPEGQuality, cfg.Output.ChromeTimeout, w)
	default:
		return fmt.Errorf("format %q: %w", format, errUnsupportedFormat)
	}
	return nil
}

// isUpdateFile reports whether a file name looks like an update file.
func isUpdateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// outputName maps an update file to its export file name inside dir.
func outputName(dir, input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"."+format)
}
