package interact

import (
	"github.com/ha1tch/fsm-canvas/pkg/canvas"
	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// Dispatcher applies actions to the live model. *canvas.Session implements it.
type Dispatcher interface {
	Dispatch(canvas.Action) bool
	Model() canvas.Model
}

// Machine interprets input events against the current mode. It keeps no
// state of its own: every gesture lives in the model's Mode.
type Machine struct {
	d        Dispatcher
	ruler    diagram.Ruler
	fontSize float64
}

// Option configures a Machine.
type Option func(*Machine)

// WithRuler sizes new and edited states with r.
func WithRuler(r diagram.Ruler) Option {
	return func(m *Machine) { m.ruler = r }
}

// WithFontSize sets the font size of newly placed states.
func WithFontSize(size float64) Option {
	return func(m *Machine) { m.fontSize = size }
}

// NewMachine creates a machine dispatching to d.
func NewMachine(d Dispatcher, opts ...Option) *Machine {
	m := &Machine{d: d, fontSize: diagram.DefaultFontSize}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle interprets one event. Events that mean nothing in the current mode
// are ignored.
func (m *Machine) Handle(ev Event) {
	model := m.d.Model()

	switch ev := ev.(type) {
	case PointerDown:
		m.pointerDown(model, ev)
	case PointerMove:
		m.pointerMove(model, ev)
	case PointerUp:
		m.pointerUp(model, ev)
	case PointerLeave:
		if model.Kind() != canvas.KindReadonly {
			m.d.Dispatch(canvas.ResetState{})
		}
	case Click:
		m.click(model, ev)
	case DoubleClick:
		m.doubleClick(model, ev)
	case KeyDown:
		m.keyDown(model, ev)
	case TextChange:
		if ed, ok := model.Mode.(canvas.Editing); ok {
			m.d.Dispatch(canvas.SetEditingState{Target: ed.Target, Draft: ev.Text})
		}
	case TextCommit:
		m.commitText(model, ev)
	}
}

func (m *Machine) newState(p geometry.Point) diagram.State {
	if m.ruler == nil {
		return diagram.NewState(p)
	}
	return diagram.NewMeasuredState(p, m.fontSize, m.ruler)
}

// mustState looks up a state the presentation layer reported as hit. A miss
// means the view and the model disagree.
func mustState(model canvas.Model, a canvas.ActionType, id string) diagram.State {
	s, ok := model.State(id)
	if !ok {
		panic(&canvas.ContractError{Action: a, ID: id, Err: canvas.ErrUnknownState})
	}
	return s
}

func mustTransition(model canvas.Model, a canvas.ActionType, id string) diagram.Transition {
	t, ok := model.Transition(id)
	if !ok {
		panic(&canvas.ContractError{Action: a, ID: id, Err: canvas.ErrUnknownTransition})
	}
	return t
}

func (m *Machine) pointerDown(model canvas.Model, ev PointerDown) {
	if model.Kind() != canvas.KindReadonly {
		return
	}
	if ev.Target.Kind != TargetStateInterior && ev.Target.Kind != TargetStateText {
		return
	}
	s := mustState(model, canvas.ActionSetDragState, ev.Target.StateID)
	m.d.Dispatch(canvas.SetDragState{
		State:    s,
		Offset:   ev.Point.Sub(s.Coords),
		Position: ev.Point,
	})
}

func (m *Machine) pointerMove(model canvas.Model, ev PointerMove) {
	switch mode := model.Mode.(type) {
	case canvas.Dragging:
		m.d.Dispatch(canvas.SetDragState{State: mode.State, Offset: mode.Offset, Position: ev.Point})
	case canvas.DrawingLine:
		m.d.Dispatch(canvas.SetLineState{State: mode.State, Position: ev.Point})
	}
}

func (m *Machine) pointerUp(model canvas.Model, ev PointerUp) {
	mode, ok := model.Mode.(canvas.Dragging)
	if !ok {
		return
	}
	mode.Position = ev.Point
	coords := mode.DraggedCoords()
	if coords == mode.State.Coords {
		m.d.Dispatch(canvas.ResetState{})
		return
	}
	current := mustState(model, canvas.ActionEditState, mode.State.ID)
	m.d.Dispatch(canvas.EditState{State: current.WithCoords(coords)})
}

func (m *Machine) click(model canvas.Model, ev Click) {
	switch mode := model.Mode.(type) {
	case canvas.Readonly:
		if ev.Target.Kind == TargetStateBorder {
			s := mustState(model, canvas.ActionSetLineState, ev.Target.StateID)
			m.d.Dispatch(canvas.SetLineState{State: s, Position: ev.Point})
		}

	case canvas.DrawingLine:
		if ev.Target.Kind != TargetStateBorder || ev.Target.StateID == mode.State.ID {
			return
		}
		to := mustState(model, canvas.ActionAddTransition, ev.Target.StateID)
		t, err := diagram.NewTransition(mode.State, to)
		if err != nil {
			return
		}
		if !m.d.Dispatch(canvas.AddTransition{Transition: t}) {
			// Duplicate edge: the gesture still ends.
			m.d.Dispatch(canvas.ResetState{})
		}

	case canvas.Deleting:
		switch {
		case ev.Target.Kind.IsState():
			s := mustState(model, canvas.ActionDeleteState, ev.Target.StateID)
			m.d.Dispatch(canvas.DeleteState{State: s})
		case ev.Target.Kind == TargetTransition:
			t := mustTransition(model, canvas.ActionDeleteTransition, ev.Target.TransitionID)
			m.d.Dispatch(canvas.DeleteTransition{Transition: t})
		}
	}
}

func (m *Machine) doubleClick(model canvas.Model, ev DoubleClick) {
	if model.Kind() != canvas.KindReadonly {
		return
	}
	switch ev.Target.Kind {
	case TargetGrid:
		m.d.Dispatch(canvas.AddState{State: m.newState(ev.Point)})
	case TargetStateText:
		s := mustState(model, canvas.ActionSetEditingState, ev.Target.StateID)
		m.d.Dispatch(canvas.SetEditingState{Target: canvas.StateTarget(s.ID), Draft: s.Text})
	case TargetTransition:
		t := mustTransition(model, canvas.ActionSetEditingState, ev.Target.TransitionID)
		m.d.Dispatch(canvas.SetEditingState{Target: canvas.TransitionTarget(t.ID), Draft: t.Text})
	}
}

func (m *Machine) keyDown(model canvas.Model, ev KeyDown) {
	switch ev.Key {
	case KeyBackspace:
		if k := model.Kind(); k != canvas.KindEditing && k != canvas.KindDeleting {
			m.d.Dispatch(canvas.SetDeleteState{})
		}
	case KeyEscape:
		if model.Kind() != canvas.KindReadonly {
			m.d.Dispatch(canvas.ResetState{})
		}
	}
}

func (m *Machine) commitText(model canvas.Model, ev TextCommit) {
	mode, ok := model.Mode.(canvas.Editing)
	if !ok {
		return
	}
	switch mode.Target.Kind {
	case canvas.TargetState:
		s := mustState(model, canvas.ActionEditState, mode.Target.ID)
		m.d.Dispatch(canvas.EditState{State: s.WithText(ev.Text, m.ruler)})
	case canvas.TargetTransition:
		t := mustTransition(model, canvas.ActionEditTransition, mode.Target.ID)
		m.d.Dispatch(canvas.EditTransition{Transition: t.WithText(ev.Text)})
	}
}
