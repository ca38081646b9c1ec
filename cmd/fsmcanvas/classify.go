package main

import (
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
	"github.com/ha1tch/fsm-canvas/pkg/interact"
)

// One diagram unit is one terminal cell. A state of width W occupies columns
// Left..Left+W-1.

type cell struct{ x, y int }

func (c cell) point() geometry.Point {
	return geometry.Pt(float64(c.x), float64(c.y))
}

func toCell(p geometry.Point) cell {
	return cell{int(math.Floor(p.X)), int(math.Floor(p.Y))}
}

// stateRect returns the cell rectangle of s, inclusive.
func stateRect(s diagram.State) (x0, y0, x1, y1 int) {
	x0, y0 = int(s.Coords.X), int(s.Coords.Y)
	return x0, y0, x0 + int(s.Style.Width) - 1, y0 + int(s.Style.Height) - 1
}

// textSpan returns the first column and width of a centred text line.
func textSpan(s diagram.State, line string) (int, int) {
	x0, _, _, _ := stateRect(s)
	w := runewidth.StringWidth(line)
	return x0 + (int(s.Style.Width)-w)/2, w
}

// outsideAnchor moves a top or left anchor off the border so arrows end
// next to the box instead of on it.
func outsideAnchor(p geometry.Point, side geometry.Side) cell {
	c := toCell(p)
	switch side {
	case geometry.SideTop:
		c.y--
	case geometry.SideLeft:
		c.x--
	}
	return c
}

// cellEndpoints returns the cells where t's line starts and ends.
func cellEndpoints(t diagram.Transition) (cell, cell) {
	fb, tb := t.From.Box(), t.To.Box()
	from, fs := geometry.NearestAnchor(fb, tb.Center())
	to, ts := geometry.NearestAnchor(tb, fb.Center())
	return outsideAnchor(from, fs), outsideAnchor(to, ts)
}

// linePoints returns the cells of a Bresenham line from a to b, inclusive.
func linePoints(a, b cell) []cell {
	dx := abs(b.x - a.x)
	dy := -abs(b.y - a.y)
	sx, sy := 1, 1
	if a.x > b.x {
		sx = -1
	}
	if a.y > b.y {
		sy = -1
	}

	pts := make([]cell, 0, max(dx, -dy)+1)
	err := dx + dy
	for x, y := a.x, a.y; ; {
		pts = append(pts, cell{x, y})
		if x == b.x && y == b.y {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// edgeLayout is a transition's on-screen geometry in diagram cells.
type edgeLayout struct {
	transition diagram.Transition
	points     []cell
	label      cell // leftmost cell of the label
	labelWidth int
}

// layoutEdges routes every transition and places its label clear of states
// and earlier labels.
func layoutEdges(doc diagram.Document) []edgeLayout {
	obstacles := make([]geometry.Box, 0, len(doc.States))
	for _, s := range doc.States {
		obstacles = append(obstacles, s.Box())
	}
	placer := geometry.NewLabelPlacer(obstacles)

	edges := make([]edgeLayout, 0, len(doc.Transitions))
	for _, t := range doc.Transitions {
		from, to := cellEndpoints(t)
		e := edgeLayout{transition: t, points: linePoints(from, to)}

		text := strings.ReplaceAll(t.Text, "\n", " ")
		if w := runewidth.StringWidth(text); w > 0 {
			size := geometry.Size{Width: float64(w), Height: 1}
			c := placer.PlaceLabelOnEdge(
				geometry.Pt(float64(from.x), float64(from.y)),
				geometry.Pt(float64(to.x), float64(to.y)),
				size, 1)
			e.label = toCell(geometry.Pt(c.X-size.Width/2+0.5, c.Y))
			e.labelWidth = w
		}
		edges = append(edges, e)
	}
	return edges
}

// classify reports what the cell at p belongs to. States are drawn over
// transitions, so they win; later states win over earlier ones.
func classify(doc diagram.Document, edges []edgeLayout, p cell) interact.Target {
	for i := len(doc.States) - 1; i >= 0; i-- {
		s := doc.States[i]
		x0, y0, x1, y1 := stateRect(s)
		if p.x < x0 || p.x > x1 || p.y < y0 || p.y > y1 {
			continue
		}
		if p.x == x0 || p.x == x1 || p.y == y0 || p.y == y1 {
			return interact.OnState(interact.TargetStateBorder, s.ID)
		}
		lines := strings.Split(s.Text, "\n")
		if row := p.y - y0 - 1; row < len(lines) {
			start, w := textSpan(s, lines[row])
			if p.x >= start && p.x < start+w {
				return interact.OnState(interact.TargetStateText, s.ID)
			}
		}
		return interact.OnState(interact.TargetStateInterior, s.ID)
	}

	for _, e := range edges {
		if e.labelWidth > 0 && p.y == e.label.y && p.x >= e.label.x && p.x < e.label.x+e.labelWidth {
			return interact.OnTransition(e.transition.ID)
		}
	}
	for _, e := range edges {
		for _, c := range e.points {
			if c == p {
				return interact.OnTransition(e.transition.ID)
			}
		}
	}
	return interact.Grid()
}

// clickTracker turns two clicks on the same cell within window into a
// double-click.
type clickTracker struct {
	window time.Duration
	last   time.Time
	at     cell
	armed  bool
}

// click records a click and reports whether it completes a double-click.
func (c *clickTracker) click(now time.Time, p cell) bool {
	if c.armed && p == c.at && now.Sub(c.last) <= c.window {
		c.armed = false
		return true
	}
	c.armed, c.last, c.at = true, now, p
	return false
}
