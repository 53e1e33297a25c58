package monitor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/bookmodal/internal/deferred"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/internal/validate"
	"github.com/marcus/bookmodal/pkg/monitor/modal"
	"github.com/marcus/bookmodal/pkg/monitor/mouse"
)

func newTestModel(t *testing.T, rec *recorder) Model {
	t.Helper()
	opts := Options{
		Scheduler: deferred.New().Immediate(),
		Logger:    discardLogger(),
	}
	if rec != nil {
		opts.Submitter = rec
	}
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	return updated.(Model)
}

// send delivers msg and settles the resulting deferred tasks.
func send(m Model, msg tea.Msg) Model {
	updated, cmd := m.Update(msg)
	return settle(updated.(Model), cmd)
}

func settle(m Model, cmd tea.Cmd) Model {
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case deferred.Msg, SubmittedMsg:
			m = send(m, msg)
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, key(string(r)))
	}
	return m
}

func click(m Model, x, y int) Model {
	return send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// regionCenter renders the view and returns a point inside the region.
func regionCenter(t *testing.T, m Model, id string) (int, int) {
	t.Helper()
	m.View()
	var found *mouse.Region
	for _, r := range m.mouse.HitMap.Regions() {
		if r.ID == id {
			r := r
			found = &r
		}
	}
	if found == nil {
		t.Fatalf("no hit region %q", id)
	}
	return found.Rect.X + found.Rect.W/2, found.Rect.Y + found.Rect.H/2
}

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func TestModelOpensWithKey(t *testing.T) {
	m := newTestModel(t, nil)
	if strings.Contains(plainView(m), "Full name") {
		t.Fatal("form should not render while closed")
	}

	m = send(m, key("b"))

	if !m.ctrl.Visible() {
		t.Fatal("b should open the booking modal")
	}
	if got := m.fields.Focused(); got != string(models.FieldName) {
		t.Errorf("focused = %q, want name", got)
	}
	view := plainView(m)
	for _, want := range []string{"Book an appointment", "Full name", "Treatment", "Cleaning", "Continue"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelEscCloses(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("b"))
	m = typeText(m, "Jane")

	m = send(m, key("esc"))

	if m.ctrl.Visible() {
		t.Error("esc should close the modal")
	}
	if m.fields.Value(models.FieldName) != "" {
		t.Error("closing should reset the form after the delay")
	}
}

func TestModelInvalidSubmitShowsErrors(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("b"))

	m = send(m, key("enter"))

	if m.ctrl.Step() != models.StepInput {
		t.Fatalf("step = %s, want input", m.ctrl.Step())
	}
	view := plainView(m)
	for _, msg := range []string{validate.MsgNameRequired, validate.MsgContactRequired, validate.MsgTreatmentRequired} {
		if !strings.Contains(view, "✗ "+msg) {
			t.Errorf("view missing error %q", msg)
		}
	}

	// Typing clears the name error live
	m = typeText(m, "J")
	if m.fields.Invalid(models.FieldName) {
		t.Error("typing a name should clear its error")
	}
	if strings.Contains(plainView(m), validate.MsgNameRequired) {
		t.Error("name error still rendered")
	}
}

func TestModelFullFlowWithKeyboard(t *testing.T) {
	rec := &recorder{}
	m := newTestModel(t, rec)
	m = send(m, key("b"))

	m = typeText(m, "Jane Doe")
	m = send(m, key("tab"))
	m = typeText(m, "555-0100")
	m.fields.SetValue(models.FieldTreatment, "whitening")
	m.fields.SetValue(models.FieldTime, "evening")

	// Enter in the name field submits the form
	m.fields.Focus(string(models.FieldName))
	m = send(m, key("enter"))

	if m.ctrl.Step() != models.StepConfirm {
		t.Fatalf("step = %s, want confirm (errors %v)", m.ctrl.Step(), m.ctrl.Errors())
	}
	view := plainView(m)
	for _, want := range []string{"Review your booking", "Jane Doe", "555-0100", "Whitening", "Evening", models.Placeholder} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm view missing %q", want)
		}
	}

	m = send(m, key("enter"))

	if m.ctrl.Step() != models.StepSuccess {
		t.Fatalf("step = %s, want success", m.ctrl.Step())
	}
	if len(rec.got) != 1 {
		t.Fatalf("submitter called %d times, want 1", len(rec.got))
	}
	view = plainView(m)
	if !strings.Contains(view, "Booking requested") || !strings.Contains(view, "Thank you") {
		t.Errorf("success view missing message:\n%s", view)
	}

	m = send(m, key("enter"))
	if m.ctrl.Visible() {
		t.Error("enter on the close button should close the modal")
	}
}

func TestModelEditReturnsToInput(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("b"))
	m.fields.SetValue(models.FieldName, "Jane")
	m.fields.SetValue(models.FieldEmail, "jane@example.com")
	m.fields.SetValue(models.FieldTreatment, "checkup")
	m.fields.SetValue(models.FieldTime, "morning")
	m = send(m, key("enter"))
	if m.ctrl.Step() != models.StepConfirm {
		t.Fatalf("step = %s, want confirm", m.ctrl.Step())
	}

	x, y := regionCenter(t, m, ActionEditBooking)
	m = click(m, x, y)

	if m.ctrl.Step() != models.StepInput {
		t.Fatalf("step = %s, want input", m.ctrl.Step())
	}
	if m.fields.Value(models.FieldName) != "Jane" {
		t.Error("edit lost the typed name")
	}
	if got := m.fields.Focused(); got != string(models.FieldName) {
		t.Errorf("focused = %q, want name", got)
	}
}

func TestModelMouseOpenAndBackdropClose(t *testing.T) {
	m := newTestModel(t, nil)

	x, y := regionCenter(t, m, ActionOpenBooking)
	m = click(m, x, y)
	if !m.ctrl.Visible() {
		t.Fatal("clicking the book button should open the modal")
	}

	// Clicks inside the box do not close it
	m.View()
	box := m.steps.input.Box()
	m = click(m, box.X+1, box.Y)
	if !m.ctrl.Visible() {
		t.Fatal("click inside the modal closed it")
	}

	m.View()
	m = click(m, 0, 0)
	if m.ctrl.Visible() {
		t.Error("backdrop click should close the modal")
	}
}

func TestModelClickChoosesListItem(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("b"))
	m = send(m, key("enter"))
	if !m.fields.Invalid(models.FieldTreatment) {
		t.Fatal("treatment should be invalid after empty submit")
	}

	x, y := regionCenter(t, m, modal.ItemRegionID(string(models.FieldTreatment), "whitening"))
	m = click(m, x, y)

	if got := m.fields.Value(models.FieldTreatment); got != "whitening" {
		t.Errorf("treatment = %q, want whitening", got)
	}
	if m.fields.Invalid(models.FieldTreatment) {
		t.Error("choosing a treatment should clear its error")
	}
	if got := m.steps.input.FocusedID(); got != string(models.FieldTreatment) {
		t.Errorf("modal focus = %q, want treatment", got)
	}
}

func TestModelIgnoresFormKeysWhileClosed(t *testing.T) {
	m := newTestModel(t, nil)
	m = send(m, key("x"))
	m = send(m, key("esc"))
	if m.ctrl.Visible() {
		t.Error("stray keys opened the modal")
	}
	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q on the page should quit")
	}
}

func TestFormatBookingAsMarkdown(t *testing.T) {
	d := validBooking()
	d.TreatmentLabel = "Cleaning"
	d.TimeSlotLabel = "Morning"
	d.Notes = "Sensitive_teeth\nplease be gentle"
	sub := models.Submission{ID: "abc", SubmittedAt: testNow, Snapshot: models.NewSnapshot(d)}

	md := formatBookingAsMarkdown(sub)

	for _, want := range []string{
		"- **Name:** Jane Doe",
		"- **Phone:** " + models.Placeholder,
		"- **Treatment:** Cleaning",
		`Sensitive\_teeth please be gentle`,
		"Reference: `abc`",
		"Requested: 2026-03-14 09:30",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
