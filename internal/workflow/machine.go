package workflow

import (
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/validate"
)

// TransitionContext carries the state guards inspect
type TransitionContext struct {
	Event       Event
	From        models.Step
	Visible     bool
	Errors      validate.Result
	HasSnapshot bool
}

// GuardResult is the outcome of a single guard check
type GuardResult struct {
	Passed  bool
	Message string
}

// Guard is a precondition on a transition
type Guard interface {
	Name() string
	Check(ctx *TransitionContext) GuardResult
}

// Transition is one edge of the state machine
type Transition struct {
	Event  Event
	From   models.Step
	To     models.Step
	Guards []Guard
}

// Machine resolves events against a transition table
type Machine struct {
	transitions []*Transition
}

// DefaultMachine returns a machine over AllTransitions
func DefaultMachine() *Machine {
	return &Machine{transitions: AllTransitions()}
}

// Find returns the transition for an event from a step, or nil
func (m *Machine) Find(event Event, from models.Step) *Transition {
	for _, t := range m.transitions {
		if t.Event == event && t.From == from {
			return t
		}
	}
	return nil
}

// IsValidTransition returns true if any event moves from one step to the other
func (m *Machine) IsValidTransition(from, to models.Step) bool {
	for _, t := range m.transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// Fire resolves the event and runs its guards. It returns the target step,
// or a *TransitionError when the event is not allowed.
func (m *Machine) Fire(ctx *TransitionContext) (models.Step, error) {
	t := m.Find(ctx.Event, ctx.From)
	if t == nil {
		return ctx.From, &TransitionError{
			Event:  ctx.Event,
			From:   ctx.From,
			To:     ctx.From,
			Reason: "no such transition",
		}
	}

	verr := &ValidationError{}
	for _, g := range t.Guards {
		if res := g.Check(ctx); !res.Passed {
			verr.Add(&GuardError{GuardName: g.Name(), Reason: res.Message})
		}
	}
	if verr.HasErrors() {
		return ctx.From, &TransitionError{
			Event:  ctx.Event,
			From:   t.From,
			To:     t.To,
			Reason: verr.Error(),
		}
	}
	return t.To, nil
}
