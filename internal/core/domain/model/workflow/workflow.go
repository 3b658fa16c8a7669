package workflow

import (
	"fmt"

	"github.com/solody/commerce-order-api/internal/pkg/errs"
	"github.com/solody/commerce-order-api/internal/pkg/guard"
)

// State is a named workflow state, such as "draft" or "pending".
type State string

// Transition is a named directed edge in a workflow: it can be applied from
// any of its source states and always leads to a single target state.
// Transitions are immutable once constructed.
type Transition struct {
	name string
	from []State
	to   State

	guard guard.ConstructorGuard
}

// ErrTransitionIsNotConstructed is returned when a Transition was not created
// through NewTransition.
var ErrTransitionIsNotConstructed = errs.NewValueIsRequiredError(
	"Transition must be created via NewTransition")

// NewTransition creates a transition with the given name, source states, and
// target state. The source set must be non-empty.
func NewTransition(name string, from []State, to State) (Transition, error) {
	if name == "" {
		return Transition{}, errs.NewValueIsRequiredError("transition name")
	}
	if len(from) == 0 {
		return Transition{}, errs.NewValueIsRequiredErrorWithCause(
			"transition source states",
			fmt.Errorf("transition %q has an empty from set", name))
	}
	if to == "" {
		return Transition{}, errs.NewValueIsRequiredErrorWithCause(
			"transition target state",
			fmt.Errorf("transition %q has no target state", name))
	}

	fromCopy := make([]State, len(from))
	copy(fromCopy, from)

	return Transition{
		name:  name,
		from:  fromCopy,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Transition was created through NewTransition.
func (t Transition) Validate() error {
	return t.guard.Validate(ErrTransitionIsNotConstructed)
}

// Name returns the transition name.
func (t Transition) Name() string {
	return t.name
}

// From returns a copy of the source state set.
func (t Transition) From() []State {
	out := make([]State, len(t.from))
	copy(out, t.from)
	return out
}

// To returns the target state.
func (t Transition) To() State {
	return t.to
}

// IsLegalFrom reports whether the transition can be applied from the given state.
func (t Transition) IsLegalFrom(s State) bool {
	for _, f := range t.from {
		if f == s {
			return true
		}
	}
	return false
}

// Workflow is a per-order-type directed graph of named states and named
// transitions. It is loaded once at startup and read-only afterwards, so it
// is safe to share between concurrent requests.
type Workflow struct {
	id          string
	states      map[State]struct{}
	transitions map[string]Transition
}

// NewWorkflow creates a workflow from declared states and transitions.
// Every transition must reference only declared states.
func NewWorkflow(id string, states []State, transitions []Transition) (*Workflow, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("workflow id")
	}
	if len(states) == 0 {
		return nil, errs.NewValueIsRequiredError("workflow states")
	}

	stateSet := make(map[State]struct{}, len(states))
	for _, s := range states {
		if s == "" {
			return nil, errs.NewValueIsRequiredError("workflow state name")
		}
		stateSet[s] = struct{}{}
	}

	transitionSet := make(map[string]Transition, len(transitions))
	for _, t := range transitions {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := stateSet[t.To()]; !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"workflow transitions",
				fmt.Errorf("transition %q targets undeclared state %q", t.Name(), t.To()))
		}
		for _, f := range t.From() {
			if _, ok := stateSet[f]; !ok {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					"workflow transitions",
					fmt.Errorf("transition %q starts from undeclared state %q", t.Name(), f))
			}
		}
		if _, dup := transitionSet[t.Name()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"workflow transitions",
				fmt.Errorf("transition %q is declared twice", t.Name()))
		}
		transitionSet[t.Name()] = t
	}

	return &Workflow{
		id:          id,
		states:      stateSet,
		transitions: transitionSet,
	}, nil
}

// ID returns the workflow identifier.
func (w *Workflow) ID() string {
	return w.id
}

// HasState reports whether the state is declared in this workflow.
func (w *Workflow) HasState(s State) bool {
	_, ok := w.states[s]
	return ok
}

// TransitionsFrom returns the transitions that are legal from the given
// state, keyed by transition name. The returned map is freshly allocated and
// may be modified by the caller.
func (w *Workflow) TransitionsFrom(s State) map[string]Transition {
	out := make(map[string]Transition)
	for name, t := range w.transitions {
		if t.IsLegalFrom(s) {
			out[name] = t
		}
	}
	return out
}

// Transition looks up a transition by name regardless of state.
func (w *Workflow) Transition(name string) (Transition, bool) {
	t, ok := w.transitions[name]
	return t, ok
}
