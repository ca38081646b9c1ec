package canvas

// Session owns the single live Model of an editor. Each accepted action
// replaces the model wholesale; actions are applied strictly in the order
// they are dispatched. A Session is driven from one goroutine, the one
// delivering input events.
type Session struct {
	reduce      Reducer
	model       Model
	dispatching bool
	listeners   []func(Model)
}

// NewSession starts a session on an empty model. A nil reducer means Reduce.
func NewSession(r Reducer) *Session {
	if r == nil {
		r = Reduce
	}
	return &Session{reduce: r, model: NewModel()}
}

// Model returns the current model.
func (s *Session) Model() Model {
	return s.model
}

// OnChange registers fn to be called with the new model after every
// accepted action.
func (s *Session) OnChange(fn func(Model)) {
	s.listeners = append(s.listeners, fn)
}

// Dispatch applies a to the current model and reports whether it was
// accepted. A rejected action leaves the model untouched.
//
// Dispatch panics if called while the reducer is running.
func (s *Session) Dispatch(a Action) bool {
	if s.dispatching {
		panic("canvas: re-entrant dispatch of " + string(a.Type()))
	}

	s.dispatching = true
	next, changed := func() (Model, bool) {
		defer func() { s.dispatching = false }()
		return s.reduce(s.model, a)
	}()
	if !changed {
		return false
	}

	s.model = next
	for _, fn := range s.listeners {
		fn(next)
	}
	return true
}
