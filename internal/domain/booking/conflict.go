package booking

import "fmt"

// ConflictError reports a double-booking attempt: the (tech, slot)
// pair is already held by a non-cancelled appointment.
type ConflictError struct {
	TechID   uint
	TechName string
	Date     string
	Label    string
}

func (e *ConflictError) Error() string {
	if e.TechName != "" {
		return fmt.Sprintf("slot %s %s already booked for %s", e.Date, e.Label, e.TechName)
	}
	return fmt.Sprintf("slot %s %s already booked for tech %d", e.Date, e.Label, e.TechID)
}
