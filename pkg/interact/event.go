// Package interact turns raw input events into canvas actions. The
// presentation layer classifies what was hit and maps screen positions into
// diagram space; the Machine decides what the input means in the current
// mode and dispatches the resulting action.
package interact

import "github.com/ha1tch/fsm-canvas/pkg/geometry"

// TargetKind is the semantic role of the shape under the pointer.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetGrid
	TargetStateInterior
	TargetStateBorder
	TargetStateText
	TargetTransition
)

func (k TargetKind) String() string {
	switch k {
	case TargetGrid:
		return "grid"
	case TargetStateInterior:
		return "state-interior"
	case TargetStateBorder:
		return "state-border"
	case TargetStateText:
		return "state-text"
	case TargetTransition:
		return "transition"
	default:
		return "none"
	}
}

// IsState reports whether the target belongs to a state.
func (k TargetKind) IsState() bool {
	return k == TargetStateInterior || k == TargetStateBorder || k == TargetStateText
}

// Target is a classified hit. StateID is set for state targets,
// TransitionID for transition targets.
type Target struct {
	Kind         TargetKind
	StateID      string
	TransitionID string
}

// Grid is the target for the empty canvas background.
func Grid() Target { return Target{Kind: TargetGrid} }

// OnState returns a state target of the given kind.
func OnState(kind TargetKind, id string) Target {
	return Target{Kind: kind, StateID: id}
}

// OnTransition returns a transition target.
func OnTransition(id string) Target {
	return Target{Kind: TargetTransition, TransitionID: id}
}

// Key names understood by the machine.
const (
	KeyBackspace = "Backspace"
	KeyEscape    = "Escape"
)

// Event is an input event in diagram coordinates.
type Event interface {
	isEvent()
}

type (
	// PointerDown is a button press over Target.
	PointerDown struct {
		Target Target
		Point  geometry.Point
	}
	// PointerMove is pointer motion.
	PointerMove struct {
		Point geometry.Point
	}
	// PointerUp is a button release.
	PointerUp struct {
		Point geometry.Point
	}
	// PointerLeave means the pointer left the canvas.
	PointerLeave struct{}
	// Click is a completed press and release over Target.
	Click struct {
		Target Target
		Point  geometry.Point
	}
	// DoubleClick is a second click in quick succession over Target.
	DoubleClick struct {
		Target Target
		Point  geometry.Point
	}
	// KeyDown is a key press, named as in KeyBackspace and KeyEscape.
	KeyDown struct {
		Key string
	}
	// TextChange carries the inline editor's current text.
	TextChange struct {
		Text string
	}
	// TextCommit ends an inline edit (blur or confirm) with its final text.
	TextCommit struct {
		Text string
	}
)

func (PointerDown) isEvent()  {}
func (PointerMove) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerLeave) isEvent() {}
func (Click) isEvent()        {}
func (DoubleClick) isEvent()  {}
func (KeyDown) isEvent()      {}
func (TextChange) isEvent()   {}
func (TextCommit) isEvent()   {}
