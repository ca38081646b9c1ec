// Package geometry provides the 2D primitives used by the diagram model and
// renderers: points, axis-aligned boxes, perimeter anchoring and label
// placement.
package geometry

import "math"

// Point represents a 2D coordinate in diagram space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size is a width/height pair in diagram units.
type Size struct {
	Width, Height float64
}

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// BoxAt builds a Box from a top-left point and a size.
func BoxAt(p Point, s Size) Box {
	return Box{Left: p.X, Top: p.Y, Width: s.Width, Height: s.Height}
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Center returns the centre point of the box.
func (b Box) Center() Point {
	return Point{b.Left + b.Width/2, b.Top + b.Height/2}
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right() && p.Y >= b.Top && p.Y <= b.Bottom()
}

// OnBorder reports whether p lies within tolerance of the box boundary.
// Points far outside the box never count as on the border.
func (b Box) OnBorder(p Point, tolerance float64) bool {
	outer := Box{b.Left - tolerance, b.Top - tolerance, b.Width + 2*tolerance, b.Height + 2*tolerance}
	if !outer.Contains(p) {
		return false
	}
	inner := Box{b.Left + tolerance, b.Top + tolerance, b.Width - 2*tolerance, b.Height - 2*tolerance}
	if inner.Width <= 0 || inner.Height <= 0 {
		return true
	}
	return !(p.X > inner.Left && p.X < inner.Right() && p.Y > inner.Top && p.Y < inner.Bottom())
}

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	left := math.Min(a.Left, b.Left)
	top := math.Min(a.Top, b.Top)
	right := math.Max(a.Right(), b.Right())
	bottom := math.Max(a.Bottom(), b.Bottom())
	return Box{left, top, right - left, bottom - top}
}

// Inflate grows the box by d on every side.
func (b Box) Inflate(d float64) Box {
	return Box{b.Left - d, b.Top - d, b.Width + 2*d, b.Height + 2*d}
}
