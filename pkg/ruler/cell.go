package ruler

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// CellRuler measures labels in terminal cells: one unit per cell column or
// row. The box includes a one-cell border and one cell of horizontal padding
// on each side. Font size is ignored.
type CellRuler struct {
	// MinWidth is the narrowest box produced, in cells.
	MinWidth int
}

// Measure returns the box size in cells for text.
func (r CellRuler) Measure(text string, _ float64) geometry.Size {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}

	boxW := width + 4 // border + padding, both sides
	if boxW < r.MinWidth {
		boxW = r.MinWidth
	}
	return geometry.Size{Width: float64(boxW), Height: float64(len(lines) + 2)}
}
