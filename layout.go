package main

import (
	"fmt"
	"math"
	"strings"
)

// Layout divisors. All geometry scales with the shorter viewport side.
const (
	radiusDivisor     = 2.2
	strokeFactor      = 0.06
	valueFontDivisor  = 5.75
	labelFontDivisor  = 2.0
	valueOffsetFactor = 0.25 // value text sits this many font sizes above centre
	labelDyDivisor    = 1.2  // first label baseline shift, in value font sizes
	arcEpsilon        = 1e-12
)

// Viewport is the pixel size the host gives the widget on every update.
type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (v Viewport) minSide() float64 {
	return math.Min(v.Width, v.Height)
}

// GaugeLayout holds every length derived from the viewport.
type GaugeLayout struct {
	Width, Height    float64
	CenterX, CenterY float64
	Radius           float64
	ArcStroke        float64
	ValueFontSize    float64
	LabelFontSize    float64
	ValueY           float64 // baseline anchor of the value text before dy
	LabelY           float64 // anchor of the first label line before dy
	LabelDy          float64
}

// computeLayout derives the gauge geometry for a viewport.
func computeLayout(vp Viewport) GaugeLayout {
	m := vp.minSide()
	l := GaugeLayout{
		Width:     vp.Width,
		Height:    vp.Height,
		CenterX:   vp.Width / 2,
		CenterY:   vp.Height / 2,
		Radius:    m / radiusDivisor,
		ArcStroke: m * strokeFactor,
	}
	l.ValueFontSize = m / valueFontDivisor
	l.LabelFontSize = l.ValueFontSize / labelFontDivisor
	l.ValueY = l.CenterY - l.ValueFontSize*valueOffsetFactor
	l.LabelY = l.CenterY + l.LabelFontSize/2
	l.LabelDy = l.ValueFontSize / labelDyDivisor
	return l
}

// labelLineY returns the anchor of label line i.
func (l GaugeLayout) labelLineY(i int) float64 {
	return l.LabelY + float64(i)*l.LabelFontSize
}

// ArcSweep is the angular span of the coloured ring, in radians, measured
// clockwise from twelve o'clock.
type ArcSweep struct {
	Start, End float64
}

func sweepFor(percentage float64) ArcSweep {
	return ArcSweep{Start: 0, End: percentage * 2 * math.Pi}
}

// arcPoint converts an angle measured clockwise from twelve o'clock into
// coordinates relative to the arc centre (y grows downwards).
func arcPoint(r, angle float64) (float64, float64) {
	return r * math.Sin(angle), -r * math.Cos(angle)
}

// arcPath builds the path data of a flat ring segment (inner radius equal to
// outer radius) centred on the origin. The outline runs along the outer edge,
// then back along the inner edge and closes, which stroked yields a single arc.
// A sweep of a full turn or more draws the whole ring as two semicircles.
func arcPath(r float64, sweep ArcSweep) string {
	if r <= arcEpsilon {
		return "M0,0Z"
	}
	da := sweep.End - sweep.Start
	cw := 1
	if da < 0 {
		cw = 0
	}
	abs := math.Abs(da)

	var b strings.Builder
	if abs >= 2*math.Pi-arcEpsilon {
		x0, y0 := arcPoint(r, sweep.Start)
		fmt.Fprintf(&b, "M%s,%s", formatCoord(x0), formatCoord(y0))
		writeFullCircle(&b, r, x0, y0, cw)
		fmt.Fprintf(&b, "M%s,%s", formatCoord(x0), formatCoord(y0))
		writeFullCircle(&b, r, x0, y0, 1-cw)
		return b.String()
	}

	large := 0
	if abs >= math.Pi {
		large = 1
	}
	x0, y0 := arcPoint(r, sweep.Start)
	x1, y1 := arcPoint(r, sweep.End)
	rs := formatCoord(r)
	fmt.Fprintf(&b, "M%s,%s", formatCoord(x0), formatCoord(y0))
	if abs > arcEpsilon {
		fmt.Fprintf(&b, "A%s,%s,0,%d,%d,%s,%s", rs, rs, large, cw, formatCoord(x1), formatCoord(y1))
	}
	fmt.Fprintf(&b, "L%s,%s", formatCoord(x1), formatCoord(y1))
	if abs > arcEpsilon {
		fmt.Fprintf(&b, "A%s,%s,0,%d,%d,%s,%s", rs, rs, large, 1-cw, formatCoord(x0), formatCoord(y0))
	}
	b.WriteString("Z")
	return b.String()
}

// writeFullCircle appends two semicircles starting and ending at (x0, y0).
func writeFullCircle(b *strings.Builder, r, x0, y0 float64, cw int) {
	rs := formatCoord(r)
	fmt.Fprintf(b, "A%s,%s,0,1,%d,%s,%s", rs, rs, cw, formatCoord(-x0), formatCoord(-y0))
	fmt.Fprintf(b, "A%s,%s,0,1,%d,%s,%s", rs, rs, cw, formatCoord(x0), formatCoord(y0))
}
