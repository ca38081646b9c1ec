// Package ruler measures state labels so state boxes can be sized to fit
// their text. FontRuler measures in pixels with the Go Regular font used by
// the image exporters; CellRuler measures in terminal cells.
package ruler

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

const (
	// Padding is the inset between a state's border and its label.
	Padding = 16.0
	// slack is added to measured text width; editors render text a few
	// pixels wider than the measured run.
	slack = 6.0

	MinWidth  = 100.0
	MinHeight = 40.0
)

// FontRuler measures text with Go Regular at 72 DPI. Faces are cached per
// font size. A FontRuler is not safe for concurrent use.
type FontRuler struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontRuler parses the embedded font.
func NewFontRuler() (*FontRuler, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontRuler{font: fnt, faces: make(map[float64]font.Face)}, nil
}

func (r *FontRuler) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		panic(err) // embedded font with a positive size never fails
	}
	r.faces[size] = f
	return f
}

// TextSize returns the raw extent of text, one line per newline.
func (r *FontRuler) TextSize(text string, fontSize float64) geometry.Size {
	if fontSize <= 0 {
		fontSize = 1
	}
	face := r.face(fontSize)
	lines := strings.Split(text, "\n")

	width := 0.0
	for _, line := range lines {
		adv := font.MeasureString(face, line)
		width = math.Max(width, float64(adv)/64)
	}
	lineHeight := float64(face.Metrics().Height) / 64
	return geometry.Size{Width: width, Height: lineHeight * float64(len(lines))}
}

// Measure returns the box size for a state label: text extent plus slack and
// padding, never smaller than the default state box.
func (r *FontRuler) Measure(text string, fontSize float64) geometry.Size {
	ts := r.TextSize(text, fontSize)
	return geometry.Size{
		Width:  math.Max(MinWidth, math.Ceil(ts.Width+slack+2*Padding)),
		Height: math.Max(MinHeight, math.Ceil(ts.Height+2*Padding)),
	}
}
