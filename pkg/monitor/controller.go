package monitor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/bookmodal/internal/deferred"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/submit"
	"github.com/marcus/bookmodal/internal/validate"
	"github.com/marcus/bookmodal/internal/workflow"
)

// submitTimeout bounds a single hand-off to the submitter.
const submitTimeout = 15 * time.Second

// State is everything the controller owns. It is only mutated by the
// controller's operations, which run on the Bubble Tea update loop.
type State struct {
	Visible  bool
	Step     models.Step
	Draft    models.BookingDraft
	Errors   validate.Result
	Snapshot *models.ConfirmationSnapshot

	// Last confirmed booking and the submitter's verdict on it
	Submission *models.Submission
	SubmitErr  error
	Submitted  bool
}

// Controller drives the booking modal through Input, Confirm and Success.
type Controller struct {
	state     State
	fields    FieldRegistry
	catalog   models.Catalog
	submitter submit.Submitter
	sched     *deferred.Scheduler
	machine   *workflow.Machine
	log       *slog.Logger
	now       func() time.Time

	focusDelay time.Duration
	closeDelay time.Duration
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithScheduler replaces the deferred task scheduler.
func WithScheduler(s *deferred.Scheduler) ControllerOption {
	return func(c *Controller) { c.sched = s }
}

// WithDelays sets the focus and close transition delays.
func WithDelays(focus, close time.Duration) ControllerOption {
	return func(c *Controller) {
		c.focusDelay = focus
		c.closeDelay = close
	}
}

// WithLogger sets the logger used for refused operations and submissions.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock replaces time.Now for submission timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// NewController creates a closed controller on the Input step.
func NewController(fields FieldRegistry, catalog models.Catalog, submitter submit.Submitter, opts ...ControllerOption) *Controller {
	if submitter == nil {
		submitter = submit.Nop
	}
	c := &Controller{
		state:      State{Step: models.StepInput, Errors: validate.Result{}},
		fields:     fields,
		catalog:    catalog,
		submitter:  submitter,
		sched:      deferred.New(),
		machine:    workflow.DefaultMachine(),
		log:        slog.Default(),
		now:        time.Now,
		focusDelay: models.DefaultFocusDelay,
		closeDelay: models.DefaultCloseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Visible reports whether the modal is shown.
func (c *Controller) Visible() bool { return c.state.Visible }

// Hidden mirrors aria-hidden on the modal root.
func (c *Controller) Hidden() bool { return !c.state.Visible }

// Step returns the current step.
func (c *Controller) Step() models.Step { return c.state.Step }

// Draft returns the committed draft.
func (c *Controller) Draft() models.BookingDraft { return c.state.Draft }

// Errors returns a copy of the current validation result.
func (c *Controller) Errors() validate.Result { return c.state.Errors.Clone() }

// Snapshot returns the confirmation snapshot, if one exists.
func (c *Controller) Snapshot() (models.ConfirmationSnapshot, bool) {
	if c.state.Snapshot == nil {
		return models.ConfirmationSnapshot{}, false
	}
	return *c.state.Snapshot, true
}

// Submission returns the last confirmed booking, if any.
func (c *Controller) Submission() (models.Submission, bool) {
	if c.state.Submission == nil {
		return models.Submission{}, false
	}
	return *c.state.Submission, true
}

// SubmitStatus reports whether the submitter has answered and with what error.
func (c *Controller) SubmitStatus() (done bool, err error) {
	return c.state.Submitted, c.state.SubmitErr
}

// Invalid reports the invalid flag of a field.
func (c *Controller) Invalid(f models.Field) bool { return c.fields.Invalid(f) }

// DescribedBy returns the error slot linked to a field, or "".
func (c *Controller) DescribedBy(f models.Field) string { return c.fields.DescribedBy(f) }

// Open shows the modal with a blank form and schedules focus on the name field.
func (c *Controller) Open() tea.Cmd {
	c.sched.Begin()
	c.state.Visible = true
	c.clear()
	c.log.Debug("booking modal opened", "cycle", c.sched.Cycle())
	return c.sched.Schedule(deferred.KindFocus, string(models.FieldName), c.focusDelay)
}

// Close hides the modal and schedules the reset after the close transition.
func (c *Controller) Close() tea.Cmd {
	if !c.state.Visible {
		c.log.Debug("close ignored", "reason", "already hidden")
		return nil
	}
	c.state.Visible = false
	c.sched.Begin()
	c.log.Debug("booking modal closed", "step", c.state.Step, "cycle", c.sched.Cycle())
	return c.sched.Schedule(deferred.KindReset, "", c.closeDelay)
}

// OnFieldChanged clears a field's error once its value satisfies the rule.
// A joint phone/email error is cleared on both fields.
func (c *Controller) OnFieldChanged(f models.Field) {
	if !c.state.Visible || c.state.Step != models.StepInput {
		return
	}
	msg, ok := c.state.Errors[f]
	if !ok || !validate.Satisfied(f, c.fields.Value(f)) {
		return
	}
	c.clearError(f)

	if !validate.IsJointError(msg) {
		return
	}
	for _, partner := range []models.Field{models.FieldPhone, models.FieldEmail} {
		if validate.IsJointError(c.state.Errors[partner]) {
			c.clearError(partner)
		}
	}
}

// SubmitInputStep validates the form and advances to Confirm, or records the
// errors and focuses the first invalid field.
func (c *Controller) SubmitInputStep() tea.Cmd {
	if !c.state.Visible || c.state.Step != models.StepInput {
		c.log.Debug("submit ignored", "visible", c.state.Visible, "step", c.state.Step)
		return nil
	}

	draft := c.readDraft()
	res := validate.Validate(draft)
	for _, f := range models.ValidatedFields() {
		if msg, ok := res[f]; ok {
			c.fields.SetError(f, msg)
		} else {
			c.fields.ClearError(f)
		}
	}
	c.state.Errors = res

	to, err := c.machine.Fire(&workflow.TransitionContext{
		Event:   workflow.EventSubmit,
		From:    c.state.Step,
		Visible: c.state.Visible,
		Errors:  res,
	})
	if err != nil {
		c.log.Debug("booking input refused", "fields", res.Fields(), "err", err)
		first, ok := res.First()
		if !ok {
			return nil
		}
		// Focus now; the pending open focus must not steal it back
		c.sched.Cancel(deferred.KindFocus)
		return c.fields.Focus(string(first))
	}

	draft = c.commit(draft)
	snap := models.NewSnapshot(draft)
	c.state.Draft = draft
	c.state.Snapshot = &snap
	c.state.Step = to
	return c.sched.Schedule(deferred.KindFocus, ActionConfirmBooking, c.focusDelay)
}

// EditFromConfirm returns to Input keeping every value as typed.
func (c *Controller) EditFromConfirm() tea.Cmd {
	to, err := c.machine.Fire(&workflow.TransitionContext{
		Event:   workflow.EventEdit,
		From:    c.state.Step,
		Visible: c.state.Visible,
	})
	if err != nil {
		c.log.Debug("edit ignored", "err", err)
		return nil
	}
	c.state.Step = to
	return c.sched.Schedule(deferred.KindFocus, string(models.FieldName), c.focusDelay)
}

// ConfirmBooking hands the snapshot to the submitter and shows Success.
// The submitter's result arrives later as a SubmittedMsg.
func (c *Controller) ConfirmBooking() tea.Cmd {
	to, err := c.machine.Fire(&workflow.TransitionContext{
		Event:       workflow.EventConfirm,
		From:        c.state.Step,
		Visible:     c.state.Visible,
		HasSnapshot: c.state.Snapshot != nil,
	})
	if err != nil {
		c.log.Debug("confirm ignored", "err", err)
		return nil
	}

	sub := submit.New(*c.state.Snapshot, c.now())
	c.state.Submission = &sub
	c.state.Submitted = false
	c.state.SubmitErr = nil
	c.state.Step = to

	d := sub.Snapshot.Draft()
	c.log.Info("booking confirmed", "id", sub.ID, "treatment", d.TreatmentID, "time", d.TimeSlotID)

	return tea.Batch(
		c.submitCmd(sub),
		c.sched.Schedule(deferred.KindFocus, ActionCloseModal, c.focusDelay),
	)
}

func (c *Controller) submitCmd(sub models.Submission) tea.Cmd {
	submitter := c.submitter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return SubmittedMsg{ID: sub.ID, Err: submitter.Submit(ctx, sub)}
	}
}

// HandleSubmitted records the submitter's answer for the current booking.
func (c *Controller) HandleSubmitted(msg SubmittedMsg) {
	if msg.Err != nil {
		c.log.Error("submit booking", "id", msg.ID, "err", msg.Err)
	} else {
		c.log.Info("booking submitted", "id", msg.ID)
	}
	if c.state.Submission == nil || c.state.Submission.ID != msg.ID {
		return
	}
	c.state.Submitted = true
	c.state.SubmitErr = msg.Err
}

// HandleTask runs a deferred task if it is still current.
func (c *Controller) HandleTask(msg deferred.Msg) tea.Cmd {
	if !c.sched.Accept(msg) {
		c.log.Debug("stale task dropped", "kind", msg.Kind, "target", msg.Target)
		return nil
	}

	switch msg.Kind {
	case deferred.KindFocus:
		if !c.state.Visible {
			return nil
		}
		return c.fields.Focus(msg.Target)

	case deferred.KindReset:
		to, err := c.machine.Fire(&workflow.TransitionContext{
			Event:   workflow.EventReset,
			From:    c.state.Step,
			Visible: c.state.Visible,
		})
		if err != nil {
			c.log.Debug("reset refused", "err", err)
			return nil
		}
		c.clear()
		c.state.Step = to
	}
	return nil
}

// clear empties draft, errors, snapshot and registry and returns to Input.
func (c *Controller) clear() {
	c.state.Step = models.StepInput
	c.state.Draft = models.BookingDraft{}
	c.state.Errors = validate.Result{}
	c.state.Snapshot = nil
	c.state.Submission = nil
	c.state.Submitted = false
	c.state.SubmitErr = nil
	c.fields.Reset()
}

func (c *Controller) clearError(f models.Field) {
	delete(c.state.Errors, f)
	c.fields.ClearError(f)
}

func (c *Controller) readDraft() models.BookingDraft {
	var d models.BookingDraft
	for _, f := range models.AllFields() {
		d.Set(f, c.fields.Value(f))
	}
	return d
}

// commit trims free text and resolves selection labels from the catalog.
func (c *Controller) commit(d models.BookingDraft) models.BookingDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Notes = strings.TrimSpace(d.Notes)
	d.TreatmentLabel = c.catalog.TreatmentLabel(d.TreatmentID)
	d.TimeSlotLabel = c.catalog.TimeSlotLabel(d.TimeSlotID)
	return d
}
