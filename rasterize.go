package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Text colours of the default stylesheet, reused by the native backend.
const (
	valueTextColor = "#333333"
	labelTextColor = "#666666"
)

type fontSet struct {
	regular *text.FontSource
	bold    *text.FontSource
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

// loadFonts parses the embedded Go fonts once per process.
func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		regular, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("loading regular font: %w", err)
			return
		}
		bold, err := text.NewFontSource(gobold.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("loading bold font: %w", err)
			return
		}
		fonts = fontSet{regular: regular, bold: bold}
	})
	return fonts, fontsErr
}

// namedColor resolves a CSS colour keyword or hex string.
func namedColor(name string) color.Color {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") {
		return gg.Hex(name).Color()
	}
	Logger().Warn("unknown colour, using black", "color", name)
	return color.Black
}

// rasterizeFrame draws a frame with the CPU renderer and encodes it. A hidden
// frame yields an empty image of the viewport size.
func rasterizeFrame(f Frame, vp Viewport, format string, quality int, w io.Writer) error {
	size := vp
	if f.Visible {
		size = Viewport{Width: f.Layout.Width, Height: f.Layout.Height}
	}
	width := int(math.Max(1, math.Ceil(size.Width)))
	height := int(math.Max(1, math.Ceil(size.Height)))

	dc := gg.NewContext(width, height)
	defer dc.Close()

	isJPEG := format == "jpg" || format == "jpeg"
	if isJPEG {
		dc.ClearWithColor(gg.RGB(1, 1, 1))
	}

	if f.Visible {
		if err := drawFrame(dc, f); err != nil {
			return err
		}
	}

	switch {
	case format == "png":
		if err := dc.EncodePNG(w); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case isJPEG:
		if err := dc.EncodeJPEG(w, quality); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("image format %q: %w", format, errUnsupportedFormat)
	}
	Logger().Info("encoded image natively", "format", strings.ToUpper(format), "width", width, "height", height)
	return nil
}

// drawFrame paints track, arc, value and label in document order.
func drawFrame(dc *gg.Context, f Frame) error {
	l := f.Layout

	dc.DrawCircle(l.CenterX, l.CenterY, l.Radius)
	dc.SetRGBA(1, 1, 1, 0.5)
	if err := dc.FillPreserve(); err != nil {
		return fmt.Errorf("filling track: %w", err)
	}
	dc.SetColor(namedColor("lightgray"))
	dc.SetLineWidth(l.ArcStroke)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroking track: %w", err)
	}

	if a1, a2, ok := rasterArcAngles(f.Sweep); ok {
		dc.DrawArc(l.CenterX, l.CenterY, l.Radius, a1, a2)
		dc.SetColor(namedColor(f.Color))
		dc.SetLineWidth(l.ArcStroke)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking arc: %w", err)
		}
	}

	fs, err := loadFonts()
	if err != nil {
		return err
	}
	dc.SetFont(fs.bold.Face(l.ValueFontSize))
	dc.SetHexColor(valueTextColor)
	dc.DrawStringAnchored(f.ValueText, l.CenterX, l.ValueY+0.35*l.ValueFontSize, 0.5, 0)

	dc.SetFont(fs.regular.Face(l.LabelFontSize))
	dc.SetHexColor(labelTextColor)
	for i, line := range f.LabelLines {
		if line == "" {
			continue
		}
		dc.DrawStringAnchored(line, l.CenterX, l.labelLineY(i)+l.LabelDy, 0.5, 0)
	}
	return nil
}

// rasterArcAngles converts a sweep measured clockwise from twelve o'clock
// into the x-axis based angles DrawArc expects, ascending and at most one
// full turn apart.
func rasterArcAngles(s ArcSweep) (float64, float64, bool) {
	a1, a2 := s.Start, s.End
	if a2 < a1 {
		a1, a2 = a2, a1
	}
	if a2-a1 <= arcEpsilon {
		return 0, 0, false
	}
	if a2-a1 > 2*math.Pi {
		a2 = a1 + 2*math.Pi
	}
	return a1 - math.Pi/2, a2 - math.Pi/2, true
}
