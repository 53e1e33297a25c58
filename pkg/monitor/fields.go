package monitor

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/pkg/monitor/modal"
)

// FieldRegistry is the controller's only view of the form controls.
// Focus targets are field names or control action IDs.
type FieldRegistry interface {
	Value(f models.Field) string
	SetValue(f models.Field, v string)
	Error(f models.Field) string
	SetError(f models.Field, msg string)
	ClearError(f models.Field)
	// Invalid and DescribedBy mirror aria-invalid and aria-describedby.
	Invalid(f models.Field) bool
	DescribedBy(f models.Field) string
	Focus(target string) tea.Cmd
	Reset()
}

// formFields backs the registry with bubbles inputs and list selections.
type formFields struct {
	inputs  map[models.Field]*textinput.Model
	notes   *textarea.Model
	choices map[models.Field]*string
	errors  map[models.Field]string
	modals  []*modal.Modal
	focused string
}

func newFormFields() *formFields {
	f := &formFields{
		inputs:  make(map[models.Field]*textinput.Model),
		choices: make(map[models.Field]*string),
		errors:  make(map[models.Field]string),
	}

	placeholders := map[models.Field]string{
		models.FieldName:  "Jane Doe",
		models.FieldPhone: "555-0100",
		models.FieldEmail: "jane@example.com",
	}
	for _, field := range []models.Field{models.FieldName, models.FieldPhone, models.FieldEmail} {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[field]
		ti.CharLimit = 120
		f.inputs[field] = &ti
	}

	ta := textarea.New()
	ta.Placeholder = "Anything we should know?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	f.notes = &ta

	for _, field := range []models.Field{models.FieldTreatment, models.FieldTime} {
		var s string
		f.choices[field] = &s
	}
	return f
}

// attach registers the modals that own focusable controls.
func (f *formFields) attach(modals ...*modal.Modal) {
	f.modals = append(f.modals, modals...)
}

func (f *formFields) Value(field models.Field) string {
	if ti, ok := f.inputs[field]; ok {
		return ti.Value()
	}
	if s, ok := f.choices[field]; ok {
		return *s
	}
	if field == models.FieldNotes {
		return f.notes.Value()
	}
	return ""
}

func (f *formFields) SetValue(field models.Field, v string) {
	if ti, ok := f.inputs[field]; ok {
		ti.SetValue(v)
		return
	}
	if s, ok := f.choices[field]; ok {
		*s = v
		return
	}
	if field == models.FieldNotes {
		f.notes.SetValue(v)
	}
}

// values captures every field, used to detect edits.
func (f *formFields) values() map[models.Field]string {
	out := make(map[models.Field]string, len(models.AllFields()))
	for _, field := range models.AllFields() {
		out[field] = f.Value(field)
	}
	return out
}

func (f *formFields) Error(field models.Field) string {
	return f.errors[field]
}

func (f *formFields) SetError(field models.Field, msg string) {
	if msg == "" {
		delete(f.errors, field)
		return
	}
	f.errors[field] = msg
}

func (f *formFields) ClearError(field models.Field) {
	delete(f.errors, field)
}

func (f *formFields) Invalid(field models.Field) bool {
	return f.errors[field] != ""
}

func (f *formFields) DescribedBy(field models.Field) string {
	if !f.Invalid(field) {
		return ""
	}
	return field.ErrorID()
}

// Focus moves focus in every modal that owns the target.
func (f *formFields) Focus(target string) tea.Cmd {
	f.focused = target
	var cmds []tea.Cmd
	for _, m := range f.modals {
		cmds = append(cmds, m.SetFocus(target))
	}
	return tea.Batch(cmds...)
}

// Focused returns the last focus target.
func (f *formFields) Focused() string {
	return f.focused
}

func (f *formFields) Reset() {
	for _, ti := range f.inputs {
		ti.Reset()
		ti.Blur()
	}
	f.notes.Reset()
	f.notes.Blur()
	for _, s := range f.choices {
		*s = ""
	}
	clear(f.errors)
	for _, m := range f.modals {
		m.Reset()
	}
	f.focused = ""
}
