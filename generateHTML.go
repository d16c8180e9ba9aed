package main

import (
	"fmt"
	"strings"
)

// generateHTML renders a host-like page: the stylesheet in the head and the
// visual container holding the gauge svg in the body.
func generateHTML(container *Element, stylesheet string, vp Viewport) (string, error) {
	surfaces := container.Children()
	if len(surfaces) == 0 {
		return "", errNoSurface
	}
	svg, err := GenerateSVG(surfaces[0], "", vp)
	if err != nil {
		return "", err
	}

	var htmlBuilder strings.Builder
	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&htmlBuilder, "<title>%s</title>\n", escapeHTML(pluginDisplayName))
	htmlBuilder.WriteString("<style>\n")
	fmt.Fprintf(&htmlBuilder, `
        body { margin: 0; background-color: #ffffff; }
        .%s {
            position: relative;
            width: %.0fpx;
            height: %.0fpx;
            overflow: hidden;
        }
	`, escapeCSS(container.classAttr()), vp.Width, vp.Height)
	htmlBuilder.WriteString("\n")
	htmlBuilder.WriteString(stylesheet)
	htmlBuilder.WriteString("</style>\n</head>\n<body>\n")

	fmt.Fprintf(&htmlBuilder, "<div class=\"%s\">\n", escapeHTML(container.classAttr()))
	htmlBuilder.WriteString(svg)
	htmlBuilder.WriteString("\n</div>\n")
	htmlBuilder.WriteString("</body>\n</html>")
	return htmlBuilder.String(), nil
}

// Simple CSS Escaping (basic)
func escapeCSS(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
