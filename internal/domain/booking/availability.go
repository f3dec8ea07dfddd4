package booking

import (
	"time"

	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

// Pure time-bucket lookups over a pre-fetched appointment list.
// No status filtering happens here except where the conflict predicate
// demands it; rendering policy belongs to the caller.

// SlotAppointments filters appts to those whose start falls in the
// minute bucket of (date, label) in loc. Cancelled appointments are
// included.
func SlotAppointments(
	appts []models.Appointment,
	date string,
	label string,
	loc *time.Location,
) ([]models.Appointment, error) {

	slot, err := timeslot.ToUTC(date, label, loc)
	if err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, ap := range appts {
		if timeslot.SameMinute(ap.StartTime, slot) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// InstantOccupiedByTech is the conflict predicate: a non-cancelled
// appointment assigned to techID already holds the instant's minute.
func InstantOccupiedByTech(
	appts []models.Appointment,
	instant time.Time,
	techID uint,
) bool {

	for _, ap := range appts {
		if ap.NailTechID == nil || *ap.NailTechID != techID {
			continue
		}
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		if timeslot.SameMinute(ap.StartTime, instant) {
			return true
		}
	}
	return false
}

// IsOccupiedByTech answers the predicate for a (date, label) slot.
func IsOccupiedByTech(
	appts []models.Appointment,
	date string,
	label string,
	loc *time.Location,
	techID uint,
) (bool, error) {

	slot, err := timeslot.ToUTC(date, label, loc)
	if err != nil {
		return false, err
	}
	return InstantOccupiedByTech(appts, slot, techID), nil
}
