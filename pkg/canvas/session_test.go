package canvas

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/ha1tch/fsm-canvas/pkg/diagram"
	"github.com/ha1tch/fsm-canvas/pkg/geometry"
)

func TestSessionDispatch(t *testing.T) {
	s := NewSession(nil)
	if s.Model().Kind() != KindReadonly {
		t.Fatal("new session should start readonly")
	}

	var seen []Model
	s.OnChange(func(m Model) { seen = append(seen, m) })

	st := diagram.NewState(geometry.Pt(0, 0))
	if !s.Dispatch(AddState{st}) {
		t.Fatal("first add rejected")
	}
	before := s.Model()

	if s.Dispatch(AddState{diagram.NewState(geometry.Pt(0, 0))}) {
		t.Fatal("duplicate add accepted")
	}
	if len(s.Model().States) != 1 {
		t.Error("rejected action changed the model")
	}
	if &s.Model().States[0] != &before.States[0] {
		t.Error("rejected action should keep the same model value")
	}
	if len(seen) != 1 {
		t.Errorf("listeners called %d times, want 1", len(seen))
	}
}

func TestSessionRejectsReentrantDispatch(t *testing.T) {
	var s *Session
	s = NewSession(func(m Model, a Action) (Model, bool) {
		s.Dispatch(ResetState{})
		return Reduce(m, a)
	})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on re-entrant dispatch")
		}
		// The session must be usable again after the panic unwinds.
		s.reduce = Reduce
		if !s.Dispatch(SetDeleteState{}) {
			t.Error("dispatch after recovered panic failed")
		}
	}()
	s.Dispatch(SetDeleteState{})
}

func TestWithLogRecordsEveryAction(t *testing.T) {
	var entries []Entry
	r := WithLog(Reduce, SinkFunc(func(e Entry) { entries = append(entries, e) }))

	s := NewSession(r)
	st := diagram.NewState(geometry.Pt(0, 0))
	s.Dispatch(AddState{st})
	s.Dispatch(AddState{st})
	s.Dispatch(SetDeleteState{})

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	want := []struct {
		typ     ActionType
		changed bool
		mode    ModeKind
	}{
		{ActionAddState, true, KindReadonly},
		{ActionAddState, false, KindReadonly},
		{ActionSetDeleteState, true, KindDeleting},
	}
	for i, w := range want {
		e := entries[i]
		if e.Seq != i+1 || e.Type != w.typ || e.Changed != w.changed || e.Mode != w.mode {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		if e.States != 1 {
			t.Errorf("entry %d states = %d, want 1", i, e.States)
		}
	}
}

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewSlogSink(logger)

	r := WithLog(Reduce, sink)
	r(NewModel(), SetDeleteState{})

	out := buf.String()
	for _, want := range []string{"msg=action", "type=SET_DELETE_STATE", "mode=DELETING", "session=" + sink.Session()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
