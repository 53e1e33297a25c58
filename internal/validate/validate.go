// Package validate holds the booking form field rules.
package validate

import (
	"strings"

	"github.com/marcus/bookmodal/internal/models"
)

// Error messages shown next to the offending field.
const (
	MsgNameRequired      = "Please enter your full name"
	MsgContactRequired   = "Please provide a phone or email"
	MsgTreatmentRequired = "Please select a treatment"
	MsgTimeRequired      = "Please select a preferred time"
)

// Result maps a field to its error message. A missing entry means valid.
type Result map[models.Field]string

// OK returns true if no field has an error
func (r Result) OK() bool {
	return len(r) == 0
}

// Has returns true if the field has an error
func (r Result) Has(f models.Field) bool {
	_, ok := r[f]
	return ok
}

// First returns the first invalid field in rule evaluation order.
func (r Result) First() (models.Field, bool) {
	for _, f := range models.ValidatedFields() {
		if r.Has(f) {
			return f, true
		}
	}
	return "", false
}

// Fields returns the invalid fields in rule evaluation order.
func (r Result) Fields() []models.Field {
	var out []models.Field
	for _, f := range models.ValidatedFields() {
		if r.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns an independent copy.
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsJointError reports whether msg is the phone/email joint rule message.
func IsJointError(msg string) bool {
	return msg == MsgContactRequired
}

// Rule checks one constraint and records any violation into r.
type Rule struct {
	Name  string
	Check func(d models.BookingDraft, r Result)
}

// Rules returns the booking rules in evaluation order.
func Rules() []Rule {
	return []Rule{
		{Name: "name", Check: func(d models.BookingDraft, r Result) {
			if blank(d.Name) {
				r[models.FieldName] = MsgNameRequired
			}
		}},
		{Name: "contact", Check: func(d models.BookingDraft, r Result) {
			if blank(d.Phone) && blank(d.Email) {
				r[models.FieldPhone] = MsgContactRequired
				r[models.FieldEmail] = MsgContactRequired
			}
		}},
		{Name: "treatment", Check: func(d models.BookingDraft, r Result) {
			if d.TreatmentID == "" {
				r[models.FieldTreatment] = MsgTreatmentRequired
			}
		}},
		{Name: "time", Check: func(d models.BookingDraft, r Result) {
			if d.TimeSlotID == "" {
				r[models.FieldTime] = MsgTimeRequired
			}
		}},
	}
}

// Validate runs every rule against the draft. All rules run, so every
// violated field is reported.
func Validate(d models.BookingDraft) Result {
	r := Result{}
	for _, rule := range Rules() {
		rule.Check(d, r)
	}
	return r
}

// Satisfied reports whether a field's current value clears a "required"
// error: trimmed text is non-empty, or a selection was made.
func Satisfied(f models.Field, value string) bool {
	if f.IsSelection() {
		return value != ""
	}
	return !blank(value)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
