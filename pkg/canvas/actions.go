package canvas

import (
	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

// ActionType names an action for logs.
type ActionType string

const (
	ActionAddState         ActionType = "ADD_STATE"
	ActionEditState        ActionType = "EDIT_STATE"
	ActionDeleteState      ActionType = "DELETE_STATE"
	ActionAddTransition    ActionType = "ADD_TRANSITION"
	ActionEditTransition   ActionType = "EDIT_TRANSITION"
	ActionDeleteTransition ActionType = "DELETE_TRANSITION"
	ActionSetDragState     ActionType = "SET_DRAG_STATE"
	ActionSetLineState     ActionType = "SET_LINE_STATE"
	ActionSetDeleteState   ActionType = "SET_DELETE_STATE"
	ActionSetEditingState  ActionType = "SET_EDITING_STATE"
	ActionResetState       ActionType = "RESET_STATE"
)

// Action is an intent dispatched against the document. The set of actions
// is closed: only the types in this file implement it.
type Action interface {
	Type() ActionType
	isAction()
}

// AddState places a new state.
type AddState struct{ State diagram.State }

// EditState replaces the state with the same ID.
type EditState struct{ State diagram.State }

// DeleteState removes a state and every transition touching it.
type DeleteState struct{ State diagram.State }

// AddTransition adds a new transition.
type AddTransition struct{ Transition diagram.Transition }

// EditTransition replaces the transition with the same ID.
type EditTransition struct{ Transition diagram.Transition }

// DeleteTransition removes a transition.
type DeleteTransition struct{ Transition diagram.Transition }

// SetDragState enters or updates the Dragging mode.
type SetDragState struct {
	State    diagram.State
	Offset   geometry.Point
	Position geometry.Point
}

// SetLineState enters or updates the DrawingLine mode.
type SetLineState struct {
	State    diagram.State
	Position geometry.Point
}

// SetDeleteState enters the Deleting mode.
type SetDeleteState struct{}

// SetEditingState enters the Editing mode or updates its draft.
type SetEditingState struct {
	Target EditTarget
	Draft  string
}

// ResetState returns to Readonly, discarding any gesture in progress.
type ResetState struct{}

func (AddState) Type() ActionType         { return ActionAddState }
func (EditState) Type() ActionType        { return ActionEditState }
func (DeleteState) Type() ActionType      { return ActionDeleteState }
func (AddTransition) Type() ActionType    { return ActionAddTransition }
func (EditTransition) Type() ActionType   { return ActionEditTransition }
func (DeleteTransition) Type() ActionType { return ActionDeleteTransition }
func (SetDragState) Type() ActionType     { return ActionSetDragState }
func (SetLineState) Type() ActionType     { return ActionSetLineState }
func (SetDeleteState) Type() ActionType   { return ActionSetDeleteState }
func (SetEditingState) Type() ActionType  { return ActionSetEditingState }
func (ResetState) Type() ActionType       { return ActionResetState }

func (AddState) isAction()         {}
func (EditState) isAction()        {}
func (DeleteState) isAction()      {}
func (AddTransition) isAction()    {}
func (EditTransition) isAction()   {}
func (DeleteTransition) isAction() {}
func (SetDragState) isAction()     {}
func (SetLineState) isAction()     {}
func (SetDeleteState) isAction()   {}
func (SetEditingState) isAction()  {}
func (ResetState) isAction()       {}
