// Package canvas holds the editor's document model: the closed set of
// actions, the interaction mode, and the pure reducer that applies one to
// the other.
package canvas

import (
	"errors"
	"fmt"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
)

// Contract violations. The interaction layer is the only producer of
// actions, so an action naming an entity that does not exist is a bug, not
// a user error.
var (
	ErrUnknownState      = errors.New("unknown state")
	ErrUnknownTransition = errors.New("unknown transition")
)

// ContractError is the panic value raised by Reduce for an action that cannot
// apply to the current model.
type ContractError struct {
	Action ActionType
	ID     string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("canvas: %s: %v %q", e.Action, e.Err, e.ID)
}

func (e *ContractError) Unwrap() error { return e.Err }

func violation(a Action, id string, err error) {
	panic(&ContractError{Action: a.Type(), ID: id, Err: err})
}

// Model is the whole editor state for one session: the document plus the
// active interaction mode.
type Model struct {
	diagram.Document
	Mode Mode
}

// NewModel returns an empty document in Readonly mode.
func NewModel() Model {
	return Model{Mode: Readonly{}}
}

// Kind returns the active mode kind; a zero Model counts as Readonly.
func (m Model) Kind() ModeKind {
	if m.Mode == nil {
		return KindReadonly
	}
	return m.Mode.Kind()
}

func (m Model) withMode(mode Mode) Model {
	m.Mode = mode
	return m
}

// Reducer is the signature of Reduce, so it can be wrapped.
type Reducer func(Model, Action) (Model, bool)

// Reduce applies a to m. It returns the new model and true, or m and false
// when the action is rejected (a duplicate insert); rejection is a normal
// outcome, not an error. Reduce never modifies the slices of m.
//
// Reduce panics with a *ContractError when a names a state or transition that
// is not in the document.
func Reduce(m Model, a Action) (Model, bool) {
	switch a := a.(type) {
	case AddState:
		return addState(m, a)
	case EditState:
		return editState(m, a), true
	case DeleteState:
		return deleteState(m, a), true
	case AddTransition:
		return addTransition(m, a)
	case EditTransition:
		return editTransition(m, a), true
	case DeleteTransition:
		return deleteTransition(m, a), true
	case SetDragState:
		return m.withMode(Dragging{State: a.State, Offset: a.Offset, Position: a.Position}), true
	case SetLineState:
		return m.withMode(DrawingLine{State: a.State, Position: a.Position}), true
	case SetDeleteState:
		return m.withMode(Deleting{}), true
	case SetEditingState:
		return m.withMode(Editing{Target: a.Target, Draft: a.Draft}), true
	case ResetState:
		return m.withMode(Readonly{}), true
	default:
		panic(fmt.Sprintf("canvas: unhandled action %T", a))
	}
}

func addState(m Model, a AddState) (Model, bool) {
	if _, taken := m.StateAt(a.State.Coords); taken {
		return m, false
	}
	for _, s := range m.States {
		if diagram.SameState(s, a.State) {
			return m, false
		}
	}

	states := make([]diagram.State, len(m.States), len(m.States)+1)
	copy(states, m.States)
	m.States = append(states, a.State)
	return m.withMode(Readonly{}), true
}

func editState(m Model, a EditState) Model {
	idx := m.StateIndex(a.State.ID)
	if idx < 0 {
		violation(a, a.State.ID, ErrUnknownState)
	}

	states := make([]diagram.State, len(m.States))
	copy(states, m.States)
	states[idx] = a.State

	// Transitions hold endpoint snapshots; refresh every one that points here.
	transitions := make([]diagram.Transition, len(m.Transitions))
	for i, t := range m.Transitions {
		if t.From.ID == a.State.ID {
			t.From = a.State
		}
		if t.To.ID == a.State.ID {
			t.To = a.State
		}
		transitions[i] = t
	}

	m.States = states
	m.Transitions = transitions
	return m.withMode(Readonly{})
}

func deleteState(m Model, a DeleteState) Model {
	if m.StateIndex(a.State.ID) < 0 {
		violation(a, a.State.ID, ErrUnknownState)
	}

	states := make([]diagram.State, 0, len(m.States)-1)
	for _, s := range m.States {
		if s.ID != a.State.ID {
			states = append(states, s)
		}
	}

	transitions := make([]diagram.Transition, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		if !t.Touches(a.State.ID) {
			transitions = append(transitions, t)
		}
	}

	m.States = states
	m.Transitions = transitions
	return m.withMode(Readonly{})
}

func addTransition(m Model, a AddTransition) (Model, bool) {
	t := a.Transition
	if t.From.ID == t.To.ID {
		return m, false
	}
	if _, dup := m.Between(t.From.ID, t.To.ID); dup {
		return m, false
	}
	for _, existing := range m.Transitions {
		if diagram.SameTransition(existing, t) {
			return m, false
		}
	}

	from, ok := m.State(t.From.ID)
	if !ok {
		violation(a, t.From.ID, ErrUnknownState)
	}
	to, ok := m.State(t.To.ID)
	if !ok {
		violation(a, t.To.ID, ErrUnknownState)
	}
	t.From, t.To = from, to

	transitions := make([]diagram.Transition, len(m.Transitions), len(m.Transitions)+1)
	copy(transitions, m.Transitions)
	m.Transitions = append(transitions, t)
	return m.withMode(Readonly{}), true
}

func editTransition(m Model, a EditTransition) Model {
	idx := m.TransitionIndex(a.Transition.ID)
	if idx < 0 {
		violation(a, a.Transition.ID, ErrUnknownTransition)
	}

	transitions := make([]diagram.Transition, len(m.Transitions))
	copy(transitions, m.Transitions)
	transitions[idx] = a.Transition

	m.Transitions = transitions
	return m.withMode(Readonly{})
}

func deleteTransition(m Model, a DeleteTransition) Model {
	if m.TransitionIndex(a.Transition.ID) < 0 {
		violation(a, a.Transition.ID, ErrUnknownTransition)
	}

	transitions := make([]diagram.Transition, 0, len(m.Transitions)-1)
	for _, t := range m.Transitions {
		if t.ID != a.Transition.ID {
			transitions = append(transitions, t)
		}
	}

	m.Transitions = transitions
	return m.withMode(Readonly{})
}
