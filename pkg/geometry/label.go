package geometry

import "math"

// Overlap returns the overlap area between two boxes, 0 if they are disjoint.
func Overlap(a, b Box) float64 {
	overlapX := math.Min(a.Right(), b.Right()) - math.Max(a.Left, b.Left)
	overlapY := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Top, b.Top)
	if overlapX <= 0 || overlapY <= 0 {
		return 0
	}
	return overlapX * overlapY
}

// centredBox returns a box of size s centred on c.
func centredBox(c Point, s Size) Box {
	return Box{c.X - s.Width/2, c.Y - s.Height/2, s.Width, s.Height}
}

// LabelPlacer places transition labels so they avoid states and each other.
// Every placed label becomes an obstacle for the next one.
type LabelPlacer struct {
	obstacles []Box
}

// NewLabelPlacer creates a LabelPlacer seeded with the given obstacles.
func NewLabelPlacer(obstacles []Box) *LabelPlacer {
	obs := make([]Box, len(obstacles))
	copy(obs, obstacles)
	return &LabelPlacer{obstacles: obs}
}

func (lp *LabelPlacer) overlap(b Box) float64 {
	total := 0.0
	for _, obs := range lp.obstacles {
		total += Overlap(b, obs)
	}
	return total
}

// PlaceLabel finds the best centre for a label near anchor.
func (lp *LabelPlacer) PlaceLabel(anchor Point, label Size, gap float64) Point {
	w, h := label.Width, label.Height
	candidates := []Point{
		{anchor.X, anchor.Y - h/2 - gap},
		{anchor.X, anchor.Y + h/2 + gap},
		{anchor.X + w/2 + gap, anchor.Y},
		{anchor.X - w/2 - gap, anchor.Y},
		{anchor.X + w/2 + gap, anchor.Y - h/2 - gap},
		{anchor.X - w/2 - gap, anchor.Y - h/2 - gap},
		{anchor.X + w/2 + gap, anchor.Y + h/2 + gap},
		{anchor.X - w/2 - gap, anchor.Y + h/2 + gap},
	}

	best := candidates[0]
	bestOverlap := math.MaxFloat64
	for _, pos := range candidates {
		o := lp.overlap(centredBox(pos, label))
		if o == 0 {
			best = pos
			break
		}
		if o < bestOverlap {
			bestOverlap = o
			best = pos
		}
	}

	lp.obstacles = append(lp.obstacles, centredBox(best, label))
	return best
}

// PlaceLabelOnEdge places a label beside the segment p1-p2, starting at its
// midpoint and stepping out perpendicular to it before falling back to
// PlaceLabel.
func (lp *LabelPlacer) PlaceLabelOnEdge(p1, p2 Point, label Size, gap float64) Point {
	mid := Point{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}

	dist := Distance(p1, p2)
	if dist < 1 {
		return lp.PlaceLabel(mid, label, gap)
	}
	perpX := -(p2.Y - p1.Y) / dist
	perpY := (p2.X - p1.X) / dist

	for _, offset := range []float64{gap, -gap, gap * 2, -gap * 2} {
		pos := Point{mid.X + perpX*offset, mid.Y + perpY*offset}
		b := centredBox(pos, label)
		if lp.overlap(b) == 0 {
			lp.obstacles = append(lp.obstacles, b)
			return pos
		}
	}

	return lp.PlaceLabel(mid, label, gap)
}
