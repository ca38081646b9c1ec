package canvas

import (
	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// ModeKind tags the active interaction mode.
type ModeKind int

const (
	KindReadonly ModeKind = iota
	KindDragging
	KindDrawingLine
	KindDeleting
	KindEditing
)

// String returns the mode name for display and logs.
func (k ModeKind) String() string {
	switch k {
	case KindReadonly:
		return "READONLY"
	case KindDragging:
		return "DRAGGING"
	case KindDrawingLine:
		return "DRAWING_LINE"
	case KindDeleting:
		return "DELETING"
	case KindEditing:
		return "EDITING"
	default:
		return "UNKNOWN"
	}
}

// Mode is the current interaction gesture. Exactly one variant is active;
// gesture data lives in the variant and is discarded when the mode changes.
// The set of variants is closed.
type Mode interface {
	Kind() ModeKind
	isMode()
}

// Readonly is the resting mode every gesture starts from.
type Readonly struct{}

// Dragging moves State. Offset is the grab point relative to the state's
// top-left corner; Position is the live pointer location.
type Dragging struct {
	State    diagram.State
	Offset   geometry.Point
	Position geometry.Point
}

// DrawingLine draws a transition out of State towards the live Position.
type DrawingLine struct {
	State    diagram.State
	Position geometry.Point
}

// Deleting removes whatever state or transition is clicked next.
type Deleting struct{}

// Editing edits the label of Target inline. Draft is the uncommitted text.
type Editing struct {
	Target EditTarget
	Draft  string
}

func (Readonly) Kind() ModeKind    { return KindReadonly }
func (Dragging) Kind() ModeKind    { return KindDragging }
func (DrawingLine) Kind() ModeKind { return KindDrawingLine }
func (Deleting) Kind() ModeKind    { return KindDeleting }
func (Editing) Kind() ModeKind     { return KindEditing }

func (Readonly) isMode()    {}
func (Dragging) isMode()    {}
func (DrawingLine) isMode() {}
func (Deleting) isMode()    {}
func (Editing) isMode()     {}

// DraggedCoords is where the dragged state would land if released now.
func (d Dragging) DraggedCoords() geometry.Point {
	return d.Position.Sub(d.Offset)
}

// Origin is where the line in progress leaves its state.
func (d DrawingLine) Origin() geometry.Point {
	return geometry.NearestPerimeterPoint(d.State.Box(), d.Position)
}

// TargetKind says which kind of entity an edit applies to.
type TargetKind int

const (
	TargetState TargetKind = iota
	TargetTransition
)

func (k TargetKind) String() string {
	if k == TargetTransition {
		return "transition"
	}
	return "state"
}

// EditTarget identifies the entity whose label is being edited.
type EditTarget struct {
	Kind TargetKind
	ID   string
}

// StateTarget returns the edit target for a state.
func StateTarget(id string) EditTarget {
	return EditTarget{Kind: TargetState, ID: id}
}

// TransitionTarget returns the edit target for a transition.
func TransitionTarget(id string) EditTarget {
	return EditTarget{Kind: TargetTransition, ID: id}
}
