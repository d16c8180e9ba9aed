package main

import "math"

// Default thresholds applied when the host leaves a threshold series empty.
const (
	defaultLowThreshold  = 0.8
	defaultHighThreshold = 0.9
	defaultDecimals      = 1
	defaultLocale        = "en-US"
)

// CSS class names of the scene graph. The stylesheet targets these.
const (
	classSurface = "circleCard"
	classGroup   = "container"
	classTrack   = "circle"
	classValue   = "textValue"
	classLabel   = "textLabel"
	classArc     = "percentageArc"
)

// BandColors are the arc colours of the three threshold bands.
type BandColors struct {
	Low  string `mapstructure:"low"`
	Mid  string `mapstructure:"mid"`
	High string `mapstructure:"high"`
}

// RenderOptions tune text formatting and defaults. The zero value is not
// useful; start from DefaultRenderOptions.
type RenderOptions struct {
	Locale       string
	Decimals     int
	LabelMaxLine int
	DefaultLow   float64
	DefaultHigh  float64
	Colors       BandColors
}

// DefaultRenderOptions returns the options hosts have always rendered with.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Locale:       defaultLocale,
		Decimals:     defaultDecimals,
		LabelMaxLine: defaultLabelLineLength,
		DefaultLow:   defaultLowThreshold,
		DefaultHigh:  defaultHighThreshold,
		Colors:       BandColors{Low: "red", Mid: "yellow", High: "limegreen"},
	}
}

// DataPayload is the data of one update: the four ordered series the host
// binds. Nil means the series was absent.
type DataPayload struct {
	Percentage    *float64
	LowThreshold  *float64
	HighThreshold *float64
	LabelText     string
}

// Frame is the outcome of the latest update in backend-neutral form.
type Frame struct {
	Visible    bool
	Layout     GaugeLayout
	Percentage float64
	Low, High  float64
	ValueText  string
	LabelLines []string
	Color      string
	Sweep      ArcSweep
}

// GaugeRenderer owns the gauge scene graph below a host container. It is not
// safe for concurrent use; hosts serialise updates.
type GaugeRenderer struct {
	opts   RenderOptions
	format valueFormatter

	svg           *Element
	container     *Element
	circle        *Element
	textValue     *Element
	textLabels    []*Element
	percentageArc *Element

	frame Frame
}

// NewGaugeRenderer builds the fixed scene graph under container.
func NewGaugeRenderer(container *Element, opts RenderOptions) *GaugeRenderer {
	g := &GaugeRenderer{
		opts:   opts,
		format: newValueFormatter(opts.Locale, opts.Decimals),
	}
	g.svg = container.Append("svg").Classed(classSurface, true)
	g.container = g.svg.Append("g").Classed(classGroup, true)
	g.circle = g.container.Append("circle").Classed(classTrack, true)
	g.textValue = g.container.Append("text").Classed(classValue, true)
	g.textLabels = []*Element{g.container.Append("text").Classed(classLabel, true)}
	g.percentageArc = g.container.Append("path").Classed(classArc, true)
	return g
}

// Surface returns the root svg element.
func (g *GaugeRenderer) Surface() *Element {
	return g.svg
}

// Frame returns the result of the most recent update.
func (g *GaugeRenderer) Frame() Frame {
	f := g.frame
	f.LabelLines = append([]string(nil), g.frame.LabelLines...)
	return f
}

// Update redraws the gauge for a payload and viewport.
func (g *GaugeRenderer) Update(p DataPayload, vp Viewport) {
	if p.Percentage == nil || *p.Percentage == 0 || math.IsNaN(*p.Percentage) {
		g.svg.Style("display", "none")
		g.frame.Visible = false
		Logger().Debug("gauge hidden", "reason", "percentage absent or zero")
		return
	}
	g.svg.Style("display", "block")

	percentage := *p.Percentage
	low := resolveThresholdOrDefault(p.LowThreshold, g.opts.DefaultLow)
	high := resolveThresholdOrDefault(p.HighThreshold, g.opts.DefaultHigh)

	l := computeLayout(vp)
	g.svg.Attr("width", formatCoord(l.Width)).Attr("height", formatCoord(l.Height))

	g.circle.
		Style("fill", "white").
		Style("fill-opacity", "0.5").
		Style("stroke", "lightgray").
		Style("stroke-width", formatCoord(l.ArcStroke)).
		Attr("r", formatCoord(l.Radius)).
		Attr("cx", formatCoord(l.CenterX)).
		Attr("cy", formatCoord(l.CenterY))

	valueText := g.format.percent(percentage)
	g.textValue.
		Text(valueText).
		Attr("x", "50%").
		Attr("y", formatCoord(l.ValueY)).
		Attr("dy", "0.35em").
		Attr("text-anchor", "middle").
		Style("font-size", formatPx(l.ValueFontSize))

	lines := wrapLabel(p.LabelText, g.opts.LabelMaxLine)
	g.renderLabel(lines, l)

	sweep := sweepFor(percentage)
	color := bandColor(percentage, low, high, g.opts.Colors)
	g.percentageArc.
		Attr("d", arcPath(l.Radius, sweep)).
		Attr("transform", "translate("+formatCoord(l.CenterX)+", "+formatCoord(l.CenterY)+")").
		Style("fill", "none").
		Style("stroke", color).
		Style("stroke-width", formatCoord(l.ArcStroke))

	g.frame = Frame{
		Visible:    true,
		Layout:     l,
		Percentage: percentage,
		Low:        low,
		High:       high,
		ValueText:  valueText,
		LabelLines: lines,
		Color:      color,
		Sweep:      sweep,
	}
	Logger().Debug("gauge updated",
		"percentage", percentage, "low", low, "high", high,
		"color", color, "radius", l.Radius, "lines", len(lines))
}

// renderLabel replaces the label nodes with one text node per line. New
// nodes go before the arc so document order stays track, value, label, arc.
func (g *GaugeRenderer) renderLabel(lines []string, l GaugeLayout) {
	for _, n := range g.textLabels {
		n.Remove()
	}
	g.textLabels = g.textLabels[:0]
	for i, line := range lines {
		n := g.container.InsertBefore("text", g.percentageArc).
			Classed(classLabel, true).
			Text(line).
			Attr("x", "50%").
			Attr("y", formatCoord(l.labelLineY(i))).
			Attr("dy", formatCoord(l.LabelDy)).
			Attr("text-anchor", "middle").
			Style("font-size", formatPx(l.LabelFontSize))
		g.textLabels = append(g.textLabels, n)
	}
}
