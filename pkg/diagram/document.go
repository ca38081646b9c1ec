package diagram

import "github.com/ha1tch/fsm-canvas/pkg/geometry"

// Document is the diagram content: every state and transition on the canvas.
// A Document is treated as immutable once built; edits produce new slices.
type Document struct {
	States      []State      `json:"fstates"`
	Transitions []Transition `json:"ftransitions"`
}

// StateIndex returns the index of the state with id, or -1 if not found.
func (d Document) StateIndex(id string) int {
	for i, s := range d.States {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// TransitionIndex returns the index of the transition with id, or -1 if not found.
func (d Document) TransitionIndex(id string) int {
	for i, t := range d.Transitions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// State looks up a state by id.
func (d Document) State(id string) (State, bool) {
	if i := d.StateIndex(id); i >= 0 {
		return d.States[i], true
	}
	return State{}, false
}

// Transition looks up a transition by id.
func (d Document) Transition(id string) (Transition, bool) {
	if i := d.TransitionIndex(id); i >= 0 {
		return d.Transitions[i], true
	}
	return Transition{}, false
}

// StateAt returns the first state whose top-left corner is exactly p.
func (d Document) StateAt(p geometry.Point) (State, bool) {
	for _, s := range d.States {
		if s.Coords == p {
			return s, true
		}
	}
	return State{}, false
}

// Incident returns the transitions that start or end at the state with id.
func (d Document) Incident(stateID string) []Transition {
	var result []Transition
	for _, t := range d.Transitions {
		if t.Touches(stateID) {
			result = append(result, t)
		}
	}
	return result
}

// Between returns the transition from fromID to toID, if one exists.
func (d Document) Between(fromID, toID string) (Transition, bool) {
	for _, t := range d.Transitions {
		if t.Connects(fromID, toID) {
			return t, true
		}
	}
	return Transition{}, false
}

// Bounds returns the box enclosing every state. ok is false for an empty
// document.
func (d Document) Bounds() (b geometry.Box, ok bool) {
	for i, s := range d.States {
		if i == 0 {
			b = s.Box()
			continue
		}
		b = geometry.Union(b, s.Box())
	}
	return b, len(d.States) > 0
}

// IsEmpty reports whether the document has no states.
func (d Document) IsEmpty() bool {
	return len(d.States) == 0
}
