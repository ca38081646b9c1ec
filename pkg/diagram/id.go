package diagram

import "go.jetify.com/typeid/v2"

const (
	PrefixState      = "fstate"
	PrefixTransition = "ftransition"
)

func newID(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

// NewStateID returns a fresh, never reused state identifier.
func NewStateID() string { return newID(PrefixState) }

// NewTransitionID returns a fresh, never reused transition identifier.
func NewTransitionID() string { return newID(PrefixTransition) }
