package booking

import "github.com/lunanails/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

// InitialStatus is the state every appointment is created in.
// There is no pending state: bookings are confirmed immediately.
func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Validations
// ===============================

// ParseStatus validates enum membership.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusConfirmed, StatusCancelled, StatusDone:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// CanTransition decides whether from -> to is allowed. Permissive mode
// accepts any pair of valid statuses; strict mode only allows leaving
// the confirmed state.
func CanTransition(from, to Status, strict bool) error {
	if !strict {
		return nil
	}
	if from != StatusConfirmed || to == StatusConfirmed {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
