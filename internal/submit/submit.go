// Package submit defines the collaborator that receives confirmed bookings.
package submit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/bookmodal/internal/models"
)

// Submitter receives one confirmed booking.
type Submitter interface {
	Submit(ctx context.Context, sub models.Submission) error
}

// Func adapts a function to Submitter.
type Func func(ctx context.Context, sub models.Submission) error

// Submit calls f.
func (f Func) Submit(ctx context.Context, sub models.Submission) error {
	return f(ctx, sub)
}

// Nop accepts every submission and does nothing.
var Nop Submitter = Func(func(context.Context, models.Submission) error { return nil })

// Multi fans a submission out to every submitter in order. All of them run;
// failures are joined.
type Multi []Submitter

// Submit implements Submitter.
func (m Multi) Submit(ctx context.Context, sub models.Submission) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Submit(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New wraps a snapshot with a fresh id and timestamp.
func New(snap models.ConfirmationSnapshot, now time.Time) models.Submission {
	return models.Submission{
		ID:          uuid.NewString(),
		SubmittedAt: now,
		Snapshot:    snap,
	}
}
