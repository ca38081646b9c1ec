package diagram

import (
	"errors"

	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// DefaultTransitionText is the label given to a newly drawn transition.
const DefaultTransitionText = "Hello"

// ErrSelfLoop is returned when a transition would start and end at the same state.
var ErrSelfLoop = errors.New("transition endpoints must be distinct states")

// TransitionStyle is reserved for per-edge visual overrides.
type TransitionStyle struct{}

// Transition is a directed, labelled arrow between two states. From and To
// are snapshots of the endpoint states, refreshed whenever an endpoint is
// edited.
type Transition struct {
	ID    string          `json:"id"`
	From  State           `json:"fromState"`
	To    State           `json:"toState"`
	Text  string          `json:"text"`
	Style TransitionStyle `json:"style"`
}

// NewTransition creates a transition from one state to another.
func NewTransition(from, to State) (Transition, error) {
	if SameState(from, to) {
		return Transition{}, ErrSelfLoop
	}
	return Transition{
		ID:   NewTransitionID(),
		From: from,
		To:   to,
		Text: DefaultTransitionText,
	}, nil
}

// WithText returns a copy of t carrying text.
func (t Transition) WithText(text string) Transition {
	t.Text = text
	return t
}

// Touches reports whether the state with the given id is either endpoint.
func (t Transition) Touches(stateID string) bool {
	return t.From.ID == stateID || t.To.ID == stateID
}

// Connects reports whether t runs from the state fromID to the state toID.
func (t Transition) Connects(fromID, toID string) bool {
	return t.From.ID == fromID && t.To.ID == toID
}

// Endpoints returns where the arrow leaves From and where it meets To. Each
// end attaches to the edge midpoint of its box nearest the other box's centre.
func (t Transition) Endpoints() (geometry.Point, geometry.Point) {
	fromBox := t.From.Box()
	toBox := t.To.Box()
	start, _ := geometry.NearestAnchor(fromBox, toBox.Center())
	end, _ := geometry.NearestAnchor(toBox, fromBox.Center())
	return start, end
}

// SameTransition reports whether a and b are the same transition.
func SameTransition(a, b Transition) bool {
	return a.ID == b.ID
}
