// Package diagram defines the entities of an FSM diagram: states (nodes),
// transitions (edges) and the document that holds them.
//
// Entities are plain values. Every edit produces a new value; identity is
// carried by the ID field, never by position or pointer.
package diagram

import "github.com/ha1tch/fsm-canvas/pkg/geometry"

// Defaults for a freshly placed state.
const (
	DefaultStateText   = "State"
	DefaultStateWidth  = 100.0
	DefaultStateHeight = 40.0
	DefaultFontSize    = 24.0
)

// Ruler measures the box needed to display a label at a font size.
type Ruler interface {
	Measure(text string, fontSize float64) geometry.Size
}

// StateStyle holds the derived geometry of a state.
type StateStyle struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"fontSize"`
}

// State is one FSM state on the canvas. Coords is the top-left corner of its
// bounding box; Width and Height are derived from Text.
type State struct {
	ID     string         `json:"id"`
	Coords geometry.Point `json:"coords"`
	Text   string         `json:"text"`
	Style  StateStyle     `json:"style"`
}

// NewState creates a state at coords with the default label and size.
func NewState(coords geometry.Point) State {
	return State{
		ID:     NewStateID(),
		Coords: coords,
		Text:   DefaultStateText,
		Style: StateStyle{
			Width:    DefaultStateWidth,
			Height:   DefaultStateHeight,
			FontSize: DefaultFontSize,
		},
	}
}

// NewMeasuredState creates a state at coords sized by r for the default label.
func NewMeasuredState(coords geometry.Point, fontSize float64, r Ruler) State {
	s := NewState(coords)
	s.Style.FontSize = fontSize
	return s.WithText(s.Text, r)
}

// WithText returns a copy of s carrying text, resized by r. The font size is
// fixed at creation and never changes here.
func (s State) WithText(text string, r Ruler) State {
	s.Text = text
	if r != nil {
		size := r.Measure(text, s.Style.FontSize)
		s.Style.Width = size.Width
		s.Style.Height = size.Height
	}
	return s
}

// WithCoords returns a copy of s moved to p.
func (s State) WithCoords(p geometry.Point) State {
	s.Coords = p
	return s
}

// Box returns the bounding box of the state.
func (s State) Box() geometry.Box {
	return geometry.Box{
		Left:   s.Coords.X,
		Top:    s.Coords.Y,
		Width:  s.Style.Width,
		Height: s.Style.Height,
	}
}

// SameState reports whether a and b are the same state.
func SameState(a, b State) bool {
	return a.ID == b.ID
}
