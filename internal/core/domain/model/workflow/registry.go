package workflow

import (
	"fmt"
	"os"

	"github.com/solody/commerce-order-api/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// Well-known states and transitions of the default order workflow. The
// assembler creates orders in StateDraft and finalizes them with
// TransitionPlace, which is the one-time commit point into StatePending.
const (
	StateDraft       State = "draft"
	StatePending     State = "pending"
	StateFulfillment State = "fulfillment"
	StateCompleted   State = "completed"
	StateCanceled    State = "canceled"

	TransitionPlace    = "place"
	TransitionFulfill  = "fulfill"
	TransitionComplete = "complete"
	TransitionCancel   = "cancel"
)

// DefaultOrderTypeID is the order type used when no resolver makes a more
// specific decision and no definitions file overrides it.
const DefaultOrderTypeID = "default"

// Registry maps order type ids to their workflow definitions. It is built
// once at startup, either from compiled-in defaults or from a YAML
// definitions file, and is read-only afterwards.
type Registry struct {
	workflows map[string]*Workflow
}

// NewRegistry creates a registry over the given workflows keyed by order type id.
func NewRegistry(workflows map[string]*Workflow) (*Registry, error) {
	if len(workflows) == 0 {
		return nil, errs.NewValueIsRequiredError("workflows")
	}
	return &Registry{workflows: workflows}, nil
}

// NewDefaultRegistry creates a registry containing only the default order workflow.
func NewDefaultRegistry() *Registry {
	return &Registry{workflows: map[string]*Workflow{
		DefaultOrderTypeID: MustDefaultWorkflow(),
	}}
}

// ForOrderType returns the workflow for the given order type id. Order types
// without an explicit workflow fall back to the default workflow when one is
// registered.
func (r *Registry) ForOrderType(orderTypeID string) (*Workflow, error) {
	if w, ok := r.workflows[orderTypeID]; ok {
		return w, nil
	}
	if w, ok := r.workflows[DefaultOrderTypeID]; ok {
		return w, nil
	}
	return nil, errs.NewObjectNotFoundError("orderTypeId", orderTypeID)
}

// MustDefaultWorkflow builds the compiled-in default order workflow:
//
//	draft ──place──> pending ──fulfill──> fulfillment ──complete──> completed
//	  │                 │                     │
//	  └────────────── cancel ────────────────┘──> canceled
func MustDefaultWorkflow() *Workflow {
	place, err := NewTransition(TransitionPlace, []State{StateDraft}, StatePending)
	if err != nil {
		panic(err)
	}
	fulfill, err := NewTransition(TransitionFulfill, []State{StatePending}, StateFulfillment)
	if err != nil {
		panic(err)
	}
	complete, err := NewTransition(TransitionComplete, []State{StateFulfillment}, StateCompleted)
	if err != nil {
		panic(err)
	}
	cancel, err := NewTransition(TransitionCancel,
		[]State{StateDraft, StatePending, StateFulfillment}, StateCanceled)
	if err != nil {
		panic(err)
	}

	w, err := NewWorkflow("order_default",
		[]State{StateDraft, StatePending, StateFulfillment, StateCompleted, StateCanceled},
		[]Transition{place, fulfill, complete, cancel})
	if err != nil {
		panic(err)
	}
	return w
}

// definitions file schema:
//
//	workflows:
//	  default:
//	    id: order_default
//	    states: [draft, pending, fulfillment, completed, canceled]
//	    transitions:
//	      place:
//	        from: [draft]
//	        to: pending
type definitionsFile struct {
	Workflows map[string]workflowDefinition `yaml:"workflows"`
}

type workflowDefinition struct {
	ID          string                          `yaml:"id"`
	States      []string                        `yaml:"states"`
	Transitions map[string]transitionDefinition `yaml:"transitions"`
}

type transitionDefinition struct {
	From []string `yaml:"from"`
	To   string   `yaml:"to"`
}

// LoadRegistry reads workflow definitions from a YAML file and builds a
// registry keyed by order type id. An empty path returns the default registry.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewDefaultRegistry(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow definitions: %w", err)
	}

	var file definitionsFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing workflow definitions: %w", err)
	}
	if len(file.Workflows) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause(
			"workflows", fmt.Errorf("%s declares no workflows", path))
	}

	workflows := make(map[string]*Workflow, len(file.Workflows))
	for orderTypeID, def := range file.Workflows {
		w, buildErr := buildWorkflow(orderTypeID, def)
		if buildErr != nil {
			return nil, buildErr
		}
		workflows[orderTypeID] = w
	}

	return NewRegistry(workflows)
}

func buildWorkflow(orderTypeID string, def workflowDefinition) (*Workflow, error) {
	id := def.ID
	if id == "" {
		id = orderTypeID
	}

	states := make([]State, 0, len(def.States))
	for _, s := range def.States {
		states = append(states, State(s))
	}

	transitions := make([]Transition, 0, len(def.Transitions))
	for name, td := range def.Transitions {
		from := make([]State, 0, len(td.From))
		for _, f := range td.From {
			from = append(from, State(f))
		}
		t, err := NewTransition(name, from, State(td.To))
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	return NewWorkflow(id, states, transitions)
}
