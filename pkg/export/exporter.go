// Package export renders a diagram document to image formats.
//
// Both renderers share one layout pass: state boxes are mapped from diagram
// units to pixels, each transition runs between the nearest anchors of its
// endpoint boxes, and transition labels are placed clear of states and of
// each other. The editing grid is never exported.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// Format names an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

var (
	// ErrEmptyDocument is returned when there is nothing to draw.
	ErrEmptyDocument = errors.New("export: empty document")
	// ErrUnknownFormat is returned for unsupported format names.
	ErrUnknownFormat = errors.New("export: unknown format")
)

// ParseFormat accepts a format name or file extension, in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Exporter writes a document in one format.
type Exporter interface {
	Export(w io.Writer, doc diagram.Document) error
	// Extension is the file extension, including the dot.
	Extension() string
}

// Options controls the mapping from diagram units to pixels.
type Options struct {
	UnitWidth  float64 // pixels per horizontal diagram unit
	UnitHeight float64 // pixels per vertical diagram unit
	Margin     float64 // blank border around the drawing, in pixels
	FontSize   float64 // state label size in pixels; 0 uses each state's own size
	LabelSize  float64 // transition label size in pixels
}

// DefaultOptions suits documents laid out in pixel units.
func DefaultOptions() Options {
	return Options{
		UnitWidth:  1,
		UnitHeight: 1,
		Margin:     20,
		LabelSize:  14,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.UnitWidth <= 0 {
		o.UnitWidth = d.UnitWidth
	}
	if o.UnitHeight <= 0 {
		o.UnitHeight = d.UnitHeight
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.LabelSize <= 0 {
		o.LabelSize = d.LabelSize
	}
	return o
}

// NewExporter returns the exporter for f.
func NewExporter(f Format, opts Options) (Exporter, error) {
	opts = opts.withDefaults()
	switch f {
	case FormatSVG:
		return &SVGExporter{opts: opts}, nil
	case FormatPNG:
		return &PNGExporter{opts: opts}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// measureFunc returns the pixel size of text set at size pixels.
type measureFunc func(text string, size float64) geometry.Size

type stateShape struct {
	box      geometry.Box
	lines    []string
	fontSize float64
}

type edgeShape struct {
	from, to geometry.Point
	label    string
	labelAt  geometry.Point // centre of the label
}

// scene is a document laid out in output pixels with the origin at the
// top-left of the image.
type scene struct {
	width, height float64
	labelSize     float64
	states        []stateShape
	edges         []edgeShape
}

const labelGap = 6

func layout(doc diagram.Document, opts Options, measure measureFunc) (scene, error) {
	if doc.IsEmpty() {
		return scene{}, ErrEmptyDocument
	}
	bounds, _ := doc.Bounds()

	toPx := func(p geometry.Point) geometry.Point {
		return geometry.Pt((p.X-bounds.Left)*opts.UnitWidth, (p.Y-bounds.Top)*opts.UnitHeight)
	}
	boxPx := func(b geometry.Box) geometry.Box {
		return geometry.BoxAt(toPx(geometry.Pt(b.Left, b.Top)),
			geometry.Size{Width: b.Width * opts.UnitWidth, Height: b.Height * opts.UnitHeight})
	}

	sc := scene{labelSize: opts.LabelSize}
	obstacles := make([]geometry.Box, 0, len(doc.States))
	for _, s := range doc.States {
		size := opts.FontSize
		if size <= 0 {
			size = s.Style.FontSize
		}
		b := boxPx(s.Box())
		obstacles = append(obstacles, b)
		sc.states = append(sc.states, stateShape{
			box:      b,
			lines:    strings.Split(s.Text, "\n"),
			fontSize: size,
		})
	}

	extent := obstacles[0]
	for _, b := range obstacles[1:] {
		extent = geometry.Union(extent, b)
	}

	placer := geometry.NewLabelPlacer(obstacles)
	for _, t := range doc.Transitions {
		p1, p2 := t.Endpoints()
		e := edgeShape{from: toPx(p1), to: toPx(p2), label: t.Text}
		if e.label != "" {
			size := measure(e.label, opts.LabelSize)
			e.labelAt = placer.PlaceLabelOnEdge(e.from, e.to, size, labelGap)
			extent = geometry.Union(extent, geometry.BoxAt(
				geometry.Pt(e.labelAt.X-size.Width/2, e.labelAt.Y-size.Height/2), size))
		}
		sc.edges = append(sc.edges, e)
	}

	// Shift everything so the margin starts at the origin.
	extent = extent.Inflate(opts.Margin)
	shift := geometry.Pt(-extent.Left, -extent.Top)
	for i := range sc.states {
		b := &sc.states[i].box
		b.Left += shift.X
		b.Top += shift.Y
	}
	for i := range sc.edges {
		e := &sc.edges[i]
		e.from = e.from.Add(shift)
		e.to = e.to.Add(shift)
		e.labelAt = e.labelAt.Add(shift)
	}
	sc.width = math.Ceil(extent.Width)
	sc.height = math.Ceil(extent.Height)
	return sc, nil
}

// arrowHead returns the two base corners of an arrow head ending at tip and
// pointing away from from.
func arrowHead(from, tip geometry.Point, size float64) (geometry.Point, geometry.Point, bool) {
	dist := geometry.Distance(from, tip)
	if dist < 0.1 {
		return geometry.Point{}, geometry.Point{}, false
	}
	dx := (tip.X - from.X) / dist
	dy := (tip.Y - from.Y) / dist
	const spread = 0.5
	b1 := geometry.Pt(tip.X-size*dx+size*dy*spread, tip.Y-size*dy-size*dx*spread)
	b2 := geometry.Pt(tip.X-size*dx-size*dy*spread, tip.Y-size*dy+size*dx*spread)
	return b1, b2, true
}
