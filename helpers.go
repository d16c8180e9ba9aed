package main

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// --- Threshold Helpers ---

// resolveThresholdOrDefault returns def when v is absent or falsy. Zero and NaN
// count as falsy, so an explicit threshold of 0 still yields the default. Hosts
// have always behaved this way and saved reports depend on it.
func resolveThresholdOrDefault(v *float64, def float64) float64 {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return def
	}
	return *v
}

// bandColor picks the arc colour for a percentage given the effective thresholds.
func bandColor(percentage, low, high float64, colors BandColors) string {
	switch {
	case percentage < low:
		return colors.Low
	case percentage < high:
		return colors.Mid
	default:
		return colors.High
	}
}

// --- Number Formatting ---

// valueFormatter renders the percentage label with locale grouping and a fixed
// number of decimals.
type valueFormatter struct {
	printer  *message.Printer
	decimals int
}

func newValueFormatter(locale string, decimals int) valueFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		Logger().Warn("unknown locale, falling back to en-US", "locale", locale, "err", err)
		tag = language.AmericanEnglish
	}
	if decimals < 0 {
		decimals = 0
	}
	return valueFormatter{printer: message.NewPrinter(tag), decimals: decimals}
}

// percent formats a fraction as "75.0%".
func (f valueFormatter) percent(fraction float64) string {
	v := number.Decimal(fraction*100, number.Scale(f.decimals))
	return f.printer.Sprintf("%v%%", v)
}

// formatCoord writes a number for an SVG attribute with two decimals.
func formatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatPx writes a CSS pixel length.
func formatPx(v float64) string {
	return formatCoord(v) + "px"
}

// --- XML/HTML Escaping ---

func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var escapeHTML = escapeXML
