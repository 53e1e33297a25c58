package monitor

import "time"

// Action IDs carried by buttons and hit regions.
const (
	ActionOpenBooking    = "open-booking"
	ActionCloseModal     = "close-modal"
	ActionEditBooking    = "edit-booking"
	ActionConfirmBooking = "confirm-booking"
	ActionSubmitBooking  = "submit-booking"
)

// SubmittedMsg reports the outcome of handing a booking to the submitter.
type SubmittedMsg struct {
	ID  string
	Err error
}

// CopiedMsg reports the outcome of copying the booking summary.
type CopiedMsg struct {
	Err error
}

// ClearStatusMsg clears the status line if it is still the one identified by Seq.
type ClearStatusMsg struct {
	Seq int
}

const statusTimeout = 3 * time.Second
