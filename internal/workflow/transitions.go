package workflow

import (
	"github.com/marcus/bookmodal/internal/models"
)

// Event names a user or system action that moves the modal between steps.
type Event string

const (
	EventSubmit  Event = "submit"
	EventEdit    Event = "edit"
	EventConfirm Event = "confirm"
	EventReset   Event = "reset"
)

// AllTransitions returns all valid step transitions
// This defines the complete booking modal state machine
func AllTransitions() []*Transition {
	return []*Transition{
		// From input
		{Event: EventSubmit, From: models.StepInput, To: models.StepConfirm, Guards: []Guard{&VisibleGuard{}, &ValidDraftGuard{}}},

		// From confirm
		{Event: EventEdit, From: models.StepConfirm, To: models.StepInput, Guards: []Guard{&VisibleGuard{}}},
		{Event: EventConfirm, From: models.StepConfirm, To: models.StepSuccess, Guards: []Guard{&VisibleGuard{}, &SnapshotGuard{}}},

		// Post-close reset, from anywhere
		{Event: EventReset, From: models.StepInput, To: models.StepInput, Guards: []Guard{&HiddenGuard{}}},
		{Event: EventReset, From: models.StepConfirm, To: models.StepInput, Guards: []Guard{&HiddenGuard{}}},
		{Event: EventReset, From: models.StepSuccess, To: models.StepInput, Guards: []Guard{&HiddenGuard{}}},
	}
}

// TransitionName returns a human-readable name for the transition
func TransitionName(from, to models.Step) string {
	switch {
	case from == models.StepInput && to == models.StepConfirm:
		return "review"
	case from == models.StepConfirm && to == models.StepInput:
		return "edit"
	case from == models.StepConfirm && to == models.StepSuccess:
		return "book"
	default:
		return from.String() + " → " + to.String()
	}
}

// GetTransitionsFrom returns all steps reachable from a given step
func GetTransitionsFrom(step models.Step) []models.Step {
	var targets []models.Step
	seen := make(map[models.Step]bool)
	for _, t := range AllTransitions() {
		if t.From == step && !seen[t.To] {
			seen[t.To] = true
			targets = append(targets, t.To)
		}
	}
	return targets
}

// GetTransitionsTo returns all steps that can transition to the given step
func GetTransitionsTo(step models.Step) []models.Step {
	var sources []models.Step
	seen := make(map[models.Step]bool)
	for _, t := range AllTransitions() {
		if t.To == step && !seen[t.From] {
			seen[t.From] = true
			sources = append(sources, t.From)
		}
	}
	return sources
}
