package lifecycle

import (
	"fmt"

	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// StateDefinition is the static description of one lifecycle state.
//
// Next is empty for terminal states. AutoTransition marks states the advancer
// may enter without user action; the same flag permits off-path manual entry
// (pausing, cancelling, marking overdue by hand). EstimatedDurationDays is nil
// for states that end on an external event rather than a timer.
type StateDefinition[S ~string] struct {
	Name                  S
	Next                  S
	AutoTransition        bool
	EstimatedDurationDays *int
	NotificationTargets   []domain.NotificationTarget
	RequiredPreconditions []string
	Checklist             []string
}

// Terminal reports whether the state has no successor.
func (d StateDefinition[S]) Terminal() bool {
	return d.Next == ""
}

// Table holds the authoritative state definitions for one lifecycle.
type Table[S ~string] struct {
	order []S
	defs  map[S]StateDefinition[S]
}

// NewTable builds a table preserving declaration order.
func NewTable[S ~string](defs ...StateDefinition[S]) *Table[S] {
	t := &Table[S]{defs: make(map[S]StateDefinition[S], len(defs))}
	for _, def := range defs {
		t.order = append(t.order, def.Name)
		t.defs[def.Name] = def
	}
	return t
}

// Definition looks up a state by name. The second return is false for unknown
// names; callers must guard, lookups never panic.
func (t *Table[S]) Definition(name S) (StateDefinition[S], bool) {
	def, ok := t.defs[name]
	return def, ok
}

// States returns all definitions in declaration order.
func (t *Table[S]) States() []StateDefinition[S] {
	out := make([]StateDefinition[S], 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.defs[name])
	}
	return out
}

// Validate checks that every non-terminal state's Next resolves to a defined
// state in the same table.
func (t *Table[S]) Validate() error {
	for _, name := range t.order {
		def := t.defs[name]
		if def.Terminal() {
			continue
		}
		if _, ok := t.defs[def.Next]; !ok {
			return fmt.Errorf("state %q: next state %q not defined", name, def.Next)
		}
	}
	return nil
}

func days(n int) *int {
	return &n
}
