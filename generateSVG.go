package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var errNoSurface = errors.New("gauge has no svg surface")

// GenerateSVG serialises the gauge surface as a standalone SVG document with
// the stylesheet embedded. A surface that was never shown has no size yet and
// takes the viewport's.
func GenerateSVG(surface *Element, stylesheet string, vp Viewport) (string, error) {
	if surface == nil || surface.Tag != "svg" {
		return "", errNoSurface
	}

	var svg bytes.Buffer
	svg.WriteString(`<svg xmlns="` + svgNamespace + `"`)
	writeSVGAttributes(&svg, surface, vp)
	svg.WriteString(">\n")

	if strings.TrimSpace(stylesheet) != "" {
		svg.WriteString("  <style><![CDATA[\n")
		svg.WriteString(stylesheet)
		if !strings.HasSuffix(stylesheet, "\n") {
			svg.WriteString("\n")
		}
		svg.WriteString("  ]]></style>\n")
	}

	for _, child := range surface.children {
		writeElement(&svg, child, 1)
	}
	svg.WriteString("</svg>")
	return svg.String(), nil
}

// writeSVGAttributes writes the root attributes, filling in a missing size.
func writeSVGAttributes(svg *bytes.Buffer, surface *Element, vp Viewport) {
	if _, ok := surface.AttrValue("width"); !ok {
		fmt.Fprintf(svg, ` width="%s"`, formatCoord(vp.Width))
	}
	if _, ok := surface.AttrValue("height"); !ok {
		fmt.Fprintf(svg, ` height="%s"`, formatCoord(vp.Height))
	}
	writeAttributes(svg, surface)
}

// writeAttributes writes class, attributes and inline style in that order.
func writeAttributes(svg *bytes.Buffer, e *Element) {
	if cls := e.classAttr(); cls != "" {
		fmt.Fprintf(svg, ` class="%s"`, escapeXML(cls))
	}
	for _, a := range e.attrs {
		fmt.Fprintf(svg, ` %s="%s"`, a.name, escapeXML(a.value))
	}
	if style := e.styleAttr(); style != "" {
		fmt.Fprintf(svg, ` style="%s"`, escapeXML(style))
	}
}

// writeElement writes e and its subtree, one element per line.
func writeElement(svg *bytes.Buffer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	svg.WriteString(indent + "<" + e.Tag)
	writeAttributes(svg, e)

	switch {
	case len(e.children) > 0:
		svg.WriteString(">")
		if e.text != "" {
			svg.WriteString(escapeXML(e.text))
		}
		svg.WriteString("\n")
		for _, c := range e.children {
			writeElement(svg, c, depth+1)
		}
		svg.WriteString(indent + "</" + e.Tag + ">\n")
	case e.text != "":
		fmt.Fprintf(svg, ">%s</%s>\n", escapeXML(e.text), e.Tag)
	default:
		svg.WriteString(" />\n")
	}
}
