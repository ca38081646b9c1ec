package canvas

import (
	"errors"
	"testing"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

func mustReduce(t *testing.T, m Model, a Action) Model {
	t.Helper()
	next, ok := Reduce(m, a)
	if !ok {
		t.Fatalf("%s was rejected", a.Type())
	}
	return next
}

func mustTransition(t *testing.T, from, to diagram.State) diagram.Transition {
	t.Helper()
	tr, err := diagram.NewTransition(from, to)
	if err != nil {
		t.Fatalf("NewTransition: %v", err)
	}
	return tr
}

// fixture builds a document with states a, b, c and transitions a->b, b->c.
func fixture(t *testing.T) (Model, diagram.State, diagram.State, diagram.State) {
	t.Helper()
	a := diagram.NewState(geometry.Pt(0, 0))
	b := diagram.NewState(geometry.Pt(200, 0))
	c := diagram.NewState(geometry.Pt(400, 0))

	m := NewModel()
	m = mustReduce(t, m, AddState{a})
	m = mustReduce(t, m, AddState{b})
	m = mustReduce(t, m, AddState{c})
	m = mustReduce(t, m, AddTransition{mustTransition(t, a, b)})
	m = mustReduce(t, m, AddTransition{mustTransition(t, b, c)})
	return m, a, b, c
}

func expectViolation(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected a contract violation panic")
		}
		err, ok := r.(*ContractError)
		if !ok {
			t.Fatalf("panic value %v (%T), want *ContractError", r, r)
		}
		if !errors.Is(err, target) {
			t.Errorf("panic = %v, want %v", err, target)
		}
	}()
	fn()
}

func TestAddStateAppends(t *testing.T) {
	m := NewModel().withMode(Deleting{})
	s := diagram.NewState(geometry.Pt(0, 0))

	next := mustReduce(t, m, AddState{s})
	if len(next.States) != 1 || !diagram.SameState(next.States[0], s) {
		t.Fatalf("States = %v", next.States)
	}
	if next.Kind() != KindReadonly {
		t.Errorf("mode = %v, want READONLY", next.Kind())
	}
}

func TestAddStateRejectsDuplicates(t *testing.T) {
	s := diagram.NewState(geometry.Pt(0, 0))
	m := mustReduce(t, NewModel(), AddState{s})

	tests := []struct {
		name  string
		state diagram.State
	}{
		{"same identity", s.WithCoords(geometry.Pt(500, 500))},
		{"same position", diagram.NewState(geometry.Pt(0, 0))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := Reduce(m, AddState{tc.state})
			if ok {
				t.Fatal("duplicate add should be rejected")
			}
			if len(next.States) != 1 {
				t.Errorf("rejected add changed the document: %d states", len(next.States))
			}
		})
	}
}

func TestStatesMayOverlapAfterMove(t *testing.T) {
	m, a, b, _ := fixture(t)

	next := mustReduce(t, m, EditState{b.WithCoords(a.Coords)})
	if len(next.States) != 3 {
		t.Errorf("moving onto another state must keep both, got %d", len(next.States))
	}
}

func TestEditStatePropagatesToTransitions(t *testing.T) {
	m, a, b, c := fixture(t)

	edited := b.WithCoords(geometry.Pt(250, 80)).WithText("Busy", nil)
	next := mustReduce(t, m, EditState{edited})

	got, _ := next.State(b.ID)
	if got != edited {
		t.Errorf("state = %+v, want %+v", got, edited)
	}

	ab, ok := next.Between(a.ID, b.ID)
	if !ok {
		t.Fatal("a->b missing")
	}
	if ab.To != edited {
		t.Errorf("a->b To = %+v, want edited snapshot", ab.To)
	}
	if ab.From != a {
		t.Errorf("a->b From changed unexpectedly")
	}

	bc, ok := next.Between(b.ID, c.ID)
	if !ok {
		t.Fatal("b->c missing")
	}
	if bc.From != edited {
		t.Errorf("b->c From = %+v, want edited snapshot", bc.From)
	}
}

func TestDeleteStateCascades(t *testing.T) {
	m, a, b, c := fixture(t)

	next := mustReduce(t, m, DeleteState{b})
	if len(next.States) != 2 {
		t.Errorf("states = %d, want 2", len(next.States))
	}
	if _, ok := next.State(b.ID); ok {
		t.Error("deleted state still present")
	}
	for _, tr := range next.Transitions {
		if tr.Touches(b.ID) {
			t.Errorf("transition %s still references deleted state", tr.ID)
		}
	}
	if len(next.Transitions) != 0 {
		t.Errorf("transitions = %d, want 0", len(next.Transitions))
	}

	// Deleting an endpoint state with one incident edge leaves the rest.
	next = mustReduce(t, m, DeleteState{a})
	if len(next.Transitions) != 1 || !next.Transitions[0].Connects(b.ID, c.ID) {
		t.Errorf("transitions = %v, want only b->c", next.Transitions)
	}
}

func TestAddTransitionRejections(t *testing.T) {
	m, a, b, _ := fixture(t)
	existing := m.Transitions[0]

	selfLoop := existing
	selfLoop.ID = diagram.NewTransitionID()
	selfLoop.To = selfLoop.From

	tests := []struct {
		name string
		tr   diagram.Transition
	}{
		{"same id", existing},
		{"same ordered pair", mustTransition(t, a, b)},
		{"self loop", selfLoop},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := Reduce(m, AddTransition{tc.tr})
			if ok {
				t.Fatal("expected rejection")
			}
			if len(next.Transitions) != len(m.Transitions) {
				t.Error("rejected add changed the document")
			}
		})
	}

	// The reverse direction is a different transition.
	next := mustReduce(t, m, AddTransition{mustTransition(t, b, a)})
	if len(next.Transitions) != 3 {
		t.Errorf("transitions = %d, want 3", len(next.Transitions))
	}
}

func TestAddTransitionRefreshesSnapshots(t *testing.T) {
	m, a, _, c := fixture(t)
	stale := c
	stale.Text = "stale"

	tr := mustTransition(t, a, stale)
	next := mustReduce(t, m, AddTransition{tr})

	got, _ := next.Transition(tr.ID)
	if got.To != c {
		t.Errorf("To = %+v, want current document state", got.To)
	}
}

func TestAddTransitionUnknownEndpoint(t *testing.T) {
	m, a, _, _ := fixture(t)
	ghost := diagram.NewState(geometry.Pt(900, 900))

	expectViolation(t, ErrUnknownState, func() {
		Reduce(m, AddTransition{mustTransition(t, a, ghost)})
	})
}

func TestEditAndDeleteTransition(t *testing.T) {
	m, _, _, _ := fixture(t)
	tr := m.Transitions[1]

	next := mustReduce(t, m, EditTransition{tr.WithText("go")})
	got, _ := next.Transition(tr.ID)
	if got.Text != "go" {
		t.Errorf("Text = %q, want go", got.Text)
	}

	next = mustReduce(t, next, DeleteTransition{tr})
	if _, ok := next.Transition(tr.ID); ok {
		t.Error("transition not deleted")
	}
	if len(next.States) != 3 {
		t.Error("deleting a transition must not touch states")
	}
}

func TestUnknownEntitiesPanic(t *testing.T) {
	m, _, _, _ := fixture(t)
	ghost := diagram.NewState(geometry.Pt(900, 900))
	ghostTr := mustTransition(t, ghost, diagram.NewState(geometry.Pt(1000, 0)))

	expectViolation(t, ErrUnknownState, func() { Reduce(m, EditState{ghost}) })
	expectViolation(t, ErrUnknownState, func() { Reduce(m, DeleteState{ghost}) })
	expectViolation(t, ErrUnknownTransition, func() { Reduce(m, EditTransition{ghostTr}) })
	expectViolation(t, ErrUnknownTransition, func() { Reduce(m, DeleteTransition{ghostTr}) })
}

func TestModeActions(t *testing.T) {
	s := diagram.NewState(geometry.Pt(0, 0))
	m := mustReduce(t, NewModel(), AddState{s})

	tests := []struct {
		name   string
		action Action
		want   Mode
	}{
		{"drag", SetDragState{State: s, Offset: geometry.Pt(5, 5), Position: geometry.Pt(30, 40)},
			Dragging{State: s, Offset: geometry.Pt(5, 5), Position: geometry.Pt(30, 40)}},
		{"line", SetLineState{State: s, Position: geometry.Pt(300, 300)},
			DrawingLine{State: s, Position: geometry.Pt(300, 300)}},
		{"delete", SetDeleteState{}, Deleting{}},
		{"edit", SetEditingState{Target: StateTarget(s.ID), Draft: "x"},
			Editing{Target: StateTarget(s.ID), Draft: "x"}},
		{"reset", ResetState{}, Readonly{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := mustReduce(t, m, tc.action)
			if next.Mode != tc.want {
				t.Errorf("Mode = %#v, want %#v", next.Mode, tc.want)
			}
			if len(next.States) != 1 || len(next.Transitions) != 0 {
				t.Error("mode actions must not touch the document")
			}
		})
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	m, a, b, _ := fixture(t)

	statesBefore := append([]diagram.State(nil), m.States...)
	transBefore := append([]diagram.Transition(nil), m.Transitions...)

	Reduce(m, EditState{a.WithText("changed", nil)})
	Reduce(m, DeleteState{b})
	Reduce(m, AddState{diagram.NewState(geometry.Pt(999, 999))})
	Reduce(m, EditTransition{m.Transitions[0].WithText("changed")})
	Reduce(m, DeleteTransition{m.Transitions[0]})

	for i := range statesBefore {
		if m.States[i] != statesBefore[i] {
			t.Errorf("state %d mutated", i)
		}
	}
	for i := range transBefore {
		if m.Transitions[i] != transBefore[i] {
			t.Errorf("transition %d mutated", i)
		}
	}
}

func TestAddStateCopiesBackingArray(t *testing.T) {
	s1 := diagram.NewState(geometry.Pt(0, 0))
	base := Model{Document: diagram.Document{States: make([]diagram.State, 1, 8)}, Mode: Readonly{}}
	base.States[0] = s1

	x, _ := Reduce(base, AddState{diagram.NewState(geometry.Pt(10, 0))})
	y, _ := Reduce(base, AddState{diagram.NewState(geometry.Pt(20, 0))})

	if x.States[1].Coords == y.States[1].Coords {
		t.Error("sibling reductions share a backing array")
	}
}

func TestModeKindString(t *testing.T) {
	tests := map[ModeKind]string{
		KindReadonly:    "READONLY",
		KindDragging:    "DRAGGING",
		KindDrawingLine: "DRAWING_LINE",
		KindDeleting:    "DELETING",
		KindEditing:     "EDITING",
		ModeKind(99):    "UNKNOWN",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
	if (Model{}).Kind() != KindReadonly {
		t.Error("zero model should be readonly")
	}
}

func TestDraggedCoords(t *testing.T) {
	d := Dragging{Offset: geometry.Pt(10, 5), Position: geometry.Pt(110, 105)}
	if got := d.DraggedCoords(); got != geometry.Pt(100, 100) {
		t.Errorf("DraggedCoords = %v", got)
	}
}
