package geometry

import "math"

// Side identifies one edge of a box.
type Side int

const (
	SideTop Side = iota
	SideLeft
	SideRight
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// Anchors returns the four edge midpoints of the box, indexed by Side.
func Anchors(b Box) [4]Point {
	c := b.Center()
	return [4]Point{
		SideTop:    {c.X, b.Top},
		SideLeft:   {b.Left, c.Y},
		SideRight:  {b.Right(), c.Y},
		SideBottom: {c.X, b.Bottom()},
	}
}

// NearestAnchor returns the edge midpoint of b closest to target, and the side
// it sits on. Transition arrows attach only at these anchors. Equidistant anchors resolve to the first in top, left, right,
// bottom order, so the result is stable while a node is being dragged.
func NearestAnchor(b Box, target Point) (Point, Side) {
	anchors := Anchors(b)
	best := SideTop
	bestDist := Distance(anchors[SideTop], target)
	for side := SideLeft; side <= SideBottom; side++ {
		d := Distance(anchors[side], target)
		if d < bestDist {
			best = side
			bestDist = d
		}
	}
	return anchors[best], best
}

// NearestPerimeterPoint returns the point on the continuous boundary of b
// closest to target. Targets outside the box are clamped onto it first; ties
// between edges resolve top, bottom, left, right.
//
// It only positions the origin of a line preview while the user draws.
// Committed transitions are anchored with NearestAnchor.
func NearestPerimeterPoint(b Box, target Point) Point {
	r := b.Right()
	bt := b.Bottom()

	x := clamp(target.X, b.Left, r)
	y := clamp(target.Y, b.Top, bt)

	dl := math.Abs(x - b.Left)
	dr := math.Abs(x - r)
	dt := math.Abs(y - b.Top)
	db := math.Abs(y - bt)
	m := math.Min(math.Min(dl, dr), math.Min(dt, db))

	switch m {
	case dt:
		return Point{x, b.Top}
	case db:
		return Point{x, bt}
	case dl:
		return Point{b.Left, y}
	}
	return Point{r, y}
}

func clamp(v, lower, upper float64) float64 {
	return math.Max(lower, math.Min(upper, v))
}
