package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// supersample is the factor the image is drawn at before downsampling.
const supersample = 2

var (
	colorInk   = color.RGBA{51, 51, 51, 255} // #333
	colorPaper = color.White
)

var (
	goRegular     *truetype.Font
	goRegularOnce sync.Once
	goRegularErr  error
)

func regularFont() (*truetype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = truetype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// PNGExporter renders documents as PNG images.
type PNGExporter struct {
	opts Options
}

// Extension implements Exporter.
func (e *PNGExporter) Extension() string { return ".png" }

// faceCache hands out Go Regular faces by pixel size.
type faceCache struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

func (c *faceCache) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone, // smoothed by supersampling
	})
	c.faces[size] = f
	return f
}

func (c *faceCache) measure(text string, size float64) geometry.Size {
	face := c.face(size)
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	return geometry.Size{
		Width:  float64(width),
		Height: float64(len(lines) * face.Metrics().Height.Ceil()),
	}
}

// Render returns doc as an image.
func (e *PNGExporter) Render(doc diagram.Document) (image.Image, error) {
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("export: parse font: %w", err)
	}
	fc := &faceCache{font: f, faces: make(map[float64]font.Face)}

	sc, err := layout(doc, e.opts, fc.measure)
	if err != nil {
		return nil, err
	}

	const k = supersample
	dc := gg.NewContext(int(sc.width)*k, int(sc.height)*k)
	dc.SetColor(colorPaper)
	dc.Clear()

	// Transitions first, under states
	dc.SetColor(colorInk)
	dc.SetLineWidth(1.5 * k)
	for _, edge := range sc.edges {
		dc.DrawLine(edge.from.X*k, edge.from.Y*k, edge.to.X*k, edge.to.Y*k)
		dc.Stroke()
		if b1, b2, ok := arrowHead(edge.from, edge.to, 8); ok {
			dc.MoveTo(edge.to.X*k, edge.to.Y*k)
			dc.LineTo(b1.X*k, b1.Y*k)
			dc.LineTo(b2.X*k, b2.Y*k)
			dc.ClosePath()
			dc.Fill()
		}
		if edge.label != "" {
			dc.SetFontFace(fc.face(sc.labelSize * k))
			drawLines(dc, strings.Split(edge.label, "\n"), edge.labelAt, sc.labelSize, k)
		}
	}

	dc.SetLineWidth(2 * k)
	for _, s := range sc.states {
		b := s.box
		dc.DrawRectangle(b.Left*k, b.Top*k, b.Width*k, b.Height*k)
		dc.SetColor(colorPaper)
		dc.FillPreserve()
		dc.SetColor(colorInk)
		dc.Stroke()

		dc.SetFontFace(fc.face(s.fontSize * k))
		drawLines(dc, s.lines, b.Center(), s.fontSize, k)
	}

	large := dc.Image()
	out := image.NewRGBA(image.Rect(0, 0, int(sc.width), int(sc.height)))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)
	return out, nil
}

// drawLines draws lines centred on c, which is in output pixels.
func drawLines(dc *gg.Context, lines []string, c geometry.Point, size, k float64) {
	step := size * 1.2
	top := c.Y - step*float64(len(lines)-1)/2
	for i, line := range lines {
		dc.DrawStringAnchored(line, c.X*k, (top+step*float64(i))*k, 0.5, 0.5)
	}
}

// Export implements Exporter.
func (e *PNGExporter) Export(w io.Writer, doc diagram.Document) error {
	img, err := e.Render(doc)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}
