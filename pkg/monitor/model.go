// Package monitor is the interactive booking UI: a page with an open trigger
// and the booking modal driven by Controller.
package monitor

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/bookmodal/internal/deferred"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/submit"
	"github.com/marcus/bookmodal/pkg/monitor/mouse"
)

// Options configures a Model.
type Options struct {
	Config    *models.Config
	Submitter submit.Submitter
	Logger    *slog.Logger
	// Scheduler overrides the deferred task scheduler, mainly for tests.
	Scheduler *deferred.Scheduler
	// OpenOnStart opens the modal as soon as the program starts.
	OpenOnStart bool
}

// Model is the Bubble Tea model. All mutable state lives behind pointers so
// the value copies Bubble Tea passes around share it.
type Model struct {
	Width  int
	Height int

	ctrl    *Controller
	fields  *formFields
	steps   *stepModals
	mouse   *mouse.Handler
	success *successView
	status  *statusLine
	log     *slog.Logger

	openOnStart bool
}

// New creates the model with a closed modal.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config

	ctrlOpts := []ControllerOption{
		WithDelays(cfg.FocusDelay(), cfg.CloseDelay()),
		WithLogger(logger),
	}
	if opts.Scheduler != nil {
		ctrlOpts = append(ctrlOpts, WithScheduler(opts.Scheduler))
	}

	catalog := cfg.CatalogOrDefault()
	fields := newFormFields()
	ctrl := NewController(fields, catalog, opts.Submitter, ctrlOpts...)
	success := &successView{message: cfg.Success()}
	status := &statusLine{}
	steps := buildModals(fields, ctrl, catalog, success, status)
	fields.attach(steps.all()...)

	return Model{
		ctrl:        ctrl,
		fields:      fields,
		steps:       steps,
		mouse:       mouse.NewHandler(),
		success:     success,
		status:      status,
		log:         logger,
		openOnStart: opts.OpenOnStart,
	}
}

// Controller exposes the modal controller.
func (m Model) Controller() *Controller {
	return m.ctrl
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.openOnStart {
		return m.ctrl.Open()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case deferred.Msg:
		return m, m.ctrl.HandleTask(msg)

	case SubmittedMsg:
		m.ctrl.HandleSubmitted(msg)
		if msg.Err != nil && !m.ctrl.Visible() {
			return m, m.status.set("Last booking could not be recorded", true)
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.log.Warn("copy booking summary", "err", msg.Err)
			return m, m.status.set("Copy failed: "+msg.Err.Error(), true)
		}
		return m, m.status.set("Booking summary copied", false)

	case ClearStatusMsg:
		m.status.clear(msg.Seq)
		return m, nil
	}

	// Cursor blink and other component messages
	if m.ctrl.Visible() {
		return m, m.steps.forStep(m.ctrl.Step()).Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if !m.ctrl.Visible() {
		switch msg.String() {
		case "b", "enter":
			return m.dispatch(ActionOpenBooking)
		case "q":
			return tea.Quit
		}
		return nil
	}

	step := m.ctrl.Step()
	if step == models.StepSuccess && msg.String() == "c" {
		return m.copySummary()
	}

	before := m.fields.values()
	action, cmd := m.steps.forStep(step).HandleKey(msg)
	m.notifyChanges(before)
	if action != "" {
		return tea.Batch(cmd, m.dispatch(action))
	}
	return cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	act := m.mouse.HandleMouse(msg)
	regionID := ""
	if act.Region != nil {
		regionID = act.Region.ID
	}

	if !m.ctrl.Visible() {
		if act.Type == mouse.ActionClick && regionID == ActionOpenBooking {
			return m.dispatch(ActionOpenBooking)
		}
		return nil
	}

	md := m.steps.forStep(m.ctrl.Step())
	switch act.Type {
	case mouse.ActionClick:
		if regionID == "" {
			return nil
		}
		before := m.fields.values()
		action, cmd := md.HandleClick(regionID)
		m.notifyChanges(before)
		if action != "" {
			return tea.Batch(cmd, m.dispatch(action))
		}
		return cmd

	case mouse.ActionHover:
		md.SetHover(regionID)

	case mouse.ActionScrollUp:
		md.Scroll(regionID, -1)

	case mouse.ActionScrollDown:
		md.Scroll(regionID, 1)
	}
	return nil
}

// dispatch runs the controller operation bound to an action ID.
func (m Model) dispatch(action string) tea.Cmd {
	switch action {
	case ActionOpenBooking:
		return m.ctrl.Open()
	case ActionCloseModal:
		return m.ctrl.Close()
	case ActionSubmitBooking:
		return m.ctrl.SubmitInputStep()
	case ActionEditBooking:
		return m.ctrl.EditFromConfirm()
	case ActionConfirmBooking:
		return m.ctrl.ConfirmBooking()
	}
	m.log.Debug("unknown action", "action", action)
	return nil
}

// notifyChanges reports every field whose value differs from before.
func (m Model) notifyChanges(before map[models.Field]string) {
	for f, v := range m.fields.values() {
		if before[f] != v {
			m.ctrl.OnFieldChanged(f)
		}
	}
}

func (m Model) copySummary() tea.Cmd {
	sub, ok := m.ctrl.Submission()
	if !ok {
		return nil
	}
	text := formatBookingAsMarkdown(sub)
	return func() tea.Msg {
		return CopiedMsg{Err: copyToClipboard(text)}
	}
}

// statusLine is a transient message shown on the page.
type statusLine struct {
	text  string
	isErr bool
	seq   int
}

func (s *statusLine) set(text string, isErr bool) tea.Cmd {
	s.seq++
	s.text, s.isErr = text, isErr
	seq := s.seq
	return tea.Tick(statusTimeout, func(_ time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

func (s *statusLine) clear(seq int) {
	if seq == s.seq {
		s.text, s.isErr = "", false
	}
}

func (s *statusLine) current() (string, bool) {
	if s == nil {
		return "", false
	}
	return s.text, s.isErr
}
