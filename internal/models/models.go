package models

import (
	"strings"
	"time"
)

// Field identifies one logical input of the booking form.
type Field string

const (
	FieldName      Field = "name"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"
	FieldTreatment Field = "treatment"
	FieldTime      Field = "time"
	FieldNotes     Field = "notes"
)

// AllFields returns every field in form order.
func AllFields() []Field {
	return []Field{FieldName, FieldPhone, FieldEmail, FieldTreatment, FieldTime, FieldNotes}
}

// ValidatedFields returns the fields that carry an error slot, in rule
// evaluation order.
func ValidatedFields() []Field {
	return []Field{FieldName, FieldPhone, FieldEmail, FieldTreatment, FieldTime}
}

// IsSelection reports whether the field is chosen from a catalog rather than typed.
func (f Field) IsSelection() bool {
	return f == FieldTreatment || f == FieldTime
}

// Label returns the human-readable field title.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Full name"
	case FieldPhone:
		return "Phone"
	case FieldEmail:
		return "Email"
	case FieldTreatment:
		return "Treatment"
	case FieldTime:
		return "Preferred time"
	case FieldNotes:
		return "Notes"
	default:
		return string(f)
	}
}

// ErrorID is the identity of the field's error message slot.
func (f Field) ErrorID() string {
	return "booking-" + string(f) + "-error"
}

// Step is the visible phase of the booking modal.
type Step int

const (
	StepInput Step = iota
	StepConfirm
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepConfirm:
		return "confirm"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// AllSteps returns the steps in flow order.
func AllSteps() []Step {
	return []Step{StepInput, StepConfirm, StepSuccess}
}

// Placeholder is shown in place of an empty optional value.
const Placeholder = "—"

// BookingDraft is the booking request being edited.
type BookingDraft struct {
	Name           string
	Phone          string
	Email          string
	TreatmentID    string
	TreatmentLabel string
	TimeSlotID     string
	TimeSlotLabel  string
	Notes          string
}

// Value returns the raw value for a field. Selection fields yield their id.
func (d BookingDraft) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldPhone:
		return d.Phone
	case FieldEmail:
		return d.Email
	case FieldTreatment:
		return d.TreatmentID
	case FieldTime:
		return d.TimeSlotID
	case FieldNotes:
		return d.Notes
	default:
		return ""
	}
}

// Set assigns the raw value for a field. Selection fields take an id.
func (d *BookingDraft) Set(f Field, v string) {
	switch f {
	case FieldName:
		d.Name = v
	case FieldPhone:
		d.Phone = v
	case FieldEmail:
		d.Email = v
	case FieldTreatment:
		d.TreatmentID = v
	case FieldTime:
		d.TimeSlotID = v
	case FieldNotes:
		d.Notes = v
	}
}

// IsEmpty reports whether no field holds a value.
func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}

// ConfirmationSnapshot is the read-only copy of a validated draft.
// Only NewSnapshot creates one; fields are unexported so callers cannot
// edit a snapshot after the fact.
type ConfirmationSnapshot struct {
	draft BookingDraft
}

// NewSnapshot copies a draft that has already passed validation.
func NewSnapshot(d BookingDraft) ConfirmationSnapshot {
	return ConfirmationSnapshot{draft: d}
}

// Draft returns a copy of the snapshotted values.
func (s ConfirmationSnapshot) Draft() BookingDraft {
	return s.draft
}

// Display returns the confirmation text for a field: labels for selections,
// and the placeholder dash for empty values.
func (s ConfirmationSnapshot) Display(f Field) string {
	var v string
	switch f {
	case FieldTreatment:
		v = s.draft.TreatmentLabel
	case FieldTime:
		v = s.draft.TimeSlotLabel
	default:
		v = s.draft.Value(f)
	}
	if strings.TrimSpace(v) == "" {
		return Placeholder
	}
	return v
}

// Row is one line of the confirmation review.
type Row struct {
	Field Field
	Label string
	Value string
}

// Rows returns the confirmation review in form order.
func (s ConfirmationSnapshot) Rows() []Row {
	fields := AllFields()
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, Row{Field: f, Label: f.Label(), Value: s.Display(f)})
	}
	return rows
}

// Submission is what the submission collaborator receives at confirmBooking.
type Submission struct {
	ID          string               `json:"id"`
	SubmittedAt time.Time            `json:"submitted_at"`
	Snapshot    ConfirmationSnapshot `json:"-"`
}

// Payload is the wire form of a submission.
type Payload struct {
	ID             string    `json:"id"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	TreatmentID    string    `json:"treatment_id"`
	TreatmentLabel string    `json:"treatment_label"`
	TimeSlotID     string    `json:"time_slot_id"`
	TimeSlotLabel  string    `json:"time_slot_label"`
	Notes          string    `json:"notes,omitempty"`
}

// Payload flattens the submission for storage and transport.
func (s Submission) Payload() Payload {
	d := s.Snapshot.Draft()
	return Payload{
		ID:             s.ID,
		SubmittedAt:    s.SubmittedAt,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		TreatmentID:    d.TreatmentID,
		TreatmentLabel: d.TreatmentLabel,
		TimeSlotID:     d.TimeSlotID,
		TimeSlotLabel:  d.TimeSlotLabel,
		Notes:          d.Notes,
	}
}

// Option is one selectable catalog entry.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog holds the selectable treatments and time slots.
type Catalog struct {
	Treatments []Option `json:"treatments"`
	TimeSlots  []Option `json:"time_slots"`
}

// DefaultCatalog is used when no catalog is configured.
func DefaultCatalog() Catalog {
	return Catalog{
		Treatments: []Option{
			{ID: "cleaning", Label: "Cleaning"},
			{ID: "whitening", Label: "Whitening"},
			{ID: "checkup", Label: "Check-up"},
			{ID: "consultation", Label: "Consultation"},
		},
		TimeSlots: []Option{
			{ID: "morning", Label: "Morning"},
			{ID: "afternoon", Label: "Afternoon"},
			{ID: "evening", Label: "Evening"},
		},
	}
}

// TreatmentLabel returns the label for a treatment id, or the id itself if unknown.
func (c Catalog) TreatmentLabel(id string) string {
	return labelFor(c.Treatments, id)
}

// TimeSlotLabel returns the label for a time slot id, or the id itself if unknown.
func (c Catalog) TimeSlotLabel(id string) string {
	return labelFor(c.TimeSlots, id)
}

// Options returns the catalog entries backing a selection field.
func (c Catalog) Options(f Field) []Option {
	switch f {
	case FieldTreatment:
		return c.Treatments
	case FieldTime:
		return c.TimeSlots
	default:
		return nil
	}
}

func labelFor(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// WebhookConfig configures the optional submission webhook.
type WebhookConfig struct {
	URL    string `json:"url"`
	Secret string `json:"secret,omitempty"`
}

// Config is the on-disk configuration.
type Config struct {
	Catalog        Catalog        `json:"catalog"`
	SuccessMessage string         `json:"success_message,omitempty"`
	FocusDelayMS   int            `json:"focus_delay_ms,omitempty"`
	CloseDelayMS   int            `json:"close_delay_ms,omitempty"`
	Webhook        *WebhookConfig `json:"webhook,omitempty"`
}

const (
	DefaultFocusDelay     = 100 * time.Millisecond
	DefaultCloseDelay     = 300 * time.Millisecond
	DefaultSuccessMessage = "**Thank you!** Your booking request has been received.\n\nWe'll be in touch shortly to confirm your appointment."
)

// FocusDelay returns the configured focus delay or the default.
func (c *Config) FocusDelay() time.Duration {
	if c == nil || c.FocusDelayMS <= 0 {
		return DefaultFocusDelay
	}
	return time.Duration(c.FocusDelayMS) * time.Millisecond
}

// CloseDelay returns the configured close transition delay or the default.
func (c *Config) CloseDelay() time.Duration {
	if c == nil || c.CloseDelayMS <= 0 {
		return DefaultCloseDelay
	}
	return time.Duration(c.CloseDelayMS) * time.Millisecond
}

// Success returns the configured success message or the default.
func (c *Config) Success() string {
	if c == nil || strings.TrimSpace(c.SuccessMessage) == "" {
		return DefaultSuccessMessage
	}
	return c.SuccessMessage
}

// CatalogOrDefault returns the configured catalog, filling empty lists with defaults.
func (c *Config) CatalogOrDefault() Catalog {
	def := DefaultCatalog()
	if c == nil {
		return def
	}
	cat := c.Catalog
	if len(cat.Treatments) == 0 {
		cat.Treatments = def.Treatments
	}
	if len(cat.TimeSlots) == 0 {
		cat.TimeSlots = def.TimeSlots
	}
	return cat
}
