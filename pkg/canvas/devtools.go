package canvas

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Entry is one reducer application as seen by a Sink.
type Entry struct {
	Seq         int
	Action      Action
	Type        ActionType
	Changed     bool
	Mode        ModeKind
	States      int
	Transitions int
}

// Sink receives a record of every action passing through a logged reducer.
type Sink interface {
	Record(Entry)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Entry)

func (f SinkFunc) Record(e Entry) { f(e) }

// WithLog wraps r so that every application is reported to sink after it
// runs. The wrapped reducer behaves exactly like r.
func WithLog(r Reducer, sink Sink) Reducer {
	seq := 0
	return func(m Model, a Action) (Model, bool) {
		next, changed := r(m, a)
		seq++
		sink.Record(Entry{
			Seq:         seq,
			Action:      a,
			Type:        a.Type(),
			Changed:     changed,
			Mode:        next.Kind(),
			States:      len(next.States),
			Transitions: len(next.Transitions),
		})
		return next, changed
	}
}

// SlogSink writes entries to a structured logger at debug level, tagged with
// a session id.
type SlogSink struct {
	logger  *slog.Logger
	session string
}

// NewSlogSink returns a sink logging through logger with a fresh session id.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger, session: uuid.NewString()}
}

// Session returns the id attached to every record.
func (s *SlogSink) Session() string { return s.session }

func (s *SlogSink) Record(e Entry) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "action",
		slog.String("session", s.session),
		slog.Int("seq", e.Seq),
		slog.String("type", string(e.Type)),
		slog.Bool("changed", e.Changed),
		slog.String("mode", e.Mode.String()),
		slog.Int("states", e.States),
		slog.Int("transitions", e.Transitions),
	)
}
