package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
	"github.com/ha1tch/fsm-canvas/pkg/ruler"
)

// SVGExporter renders documents as standalone SVG. Labels are measured with
// Go Regular; viewers substitute their own sans-serif, so placement is close
// rather than exact.
type SVGExporter struct {
	opts Options
}

// Extension implements Exporter.
func (e *SVGExporter) Extension() string { return ".svg" }

func (e *SVGExporter) layout(doc diagram.Document) (scene, error) {
	r, err := ruler.NewFontRuler()
	if err != nil {
		return scene{}, fmt.Errorf("export: %w", err)
	}
	return layout(doc, e.opts, r.TextSize)
}

// Export implements Exporter.
func (e *SVGExporter) Export(w io.Writer, doc diagram.Document) error {
	sc, err := e.layout(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, renderSVG(sc)); err != nil {
		return fmt.Errorf("export: write svg: %w", err)
	}
	return nil
}

// RenderSVG returns doc as an SVG string.
func (e *SVGExporter) RenderSVG(doc diagram.Document) (string, error) {
	sc, err := e.layout(doc)
	if err != nil {
		return "", err
	}
	return renderSVG(sc), nil
}

func renderSVG(sc scene) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
  <marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">
    <polygon points="0 0, 10 3.5, 0 7" fill="#333"/>
  </marker>
</defs>
<style>
  .state { fill: white; stroke: #333; stroke-width: 2; }
  .state-label { font-family: sans-serif; text-anchor: middle; dominant-baseline: middle; }
  .transition { fill: none; stroke: #333; stroke-width: 1.5; marker-end: url(#arrowhead); }
  .trans-label { font-family: sans-serif; font-size: %.0fpx; fill: #333; text-anchor: middle; dominant-baseline: middle; }
</style>
`, sc.width, sc.height, sc.width, sc.height, sc.labelSize))

	sb.WriteString(fmt.Sprintf(`<rect width="%.0f" height="%.0f" fill="white"/>
`, sc.width, sc.height))

	// Transitions first, under states
	for _, e := range sc.edges {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" class="transition"/>
`, e.from.X, e.from.Y, e.to.X, e.to.Y))
		if e.label != "" {
			writeSVGText(&sb, "trans-label", e.labelAt, 0, strings.Split(e.label, "\n"), sc.labelSize)
		}
	}

	for _, s := range sc.states {
		b := s.box
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" class="state"/>
`, b.Left, b.Top, b.Width, b.Height))
		writeSVGText(&sb, "state-label", b.Center(), s.fontSize, s.lines, s.fontSize)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// writeSVGText writes lines centred on c. A non-zero size is set inline.
func writeSVGText(sb *strings.Builder, class string, c geometry.Point, size float64, lines []string, lineHeight float64) {
	if len(lines) == 1 {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" class="%s"%s>%s</text>
`, c.X, c.Y, class, fontAttr(size), html.EscapeString(lines[0])))
		return
	}

	step := lineHeight * 1.2
	top := c.Y - step*float64(len(lines)-1)/2
	sb.WriteString(fmt.Sprintf(`<text class="%s"%s>`, class, fontAttr(size)))
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf(`<tspan x="%.1f" y="%.1f">%s</tspan>`,
			c.X, top+step*float64(i), html.EscapeString(line)))
	}
	sb.WriteString("</text>\n")
}

func fontAttr(size float64) string {
	if size <= 0 {
		return ""
	}
	return fmt.Sprintf(` font-size="%.0fpx"`, size)
}
