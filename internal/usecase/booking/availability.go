package booking

import (
	"context"
	"time"

	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

// The salon is closed on Tuesdays; the calendar also refuses past days.
const closedWeekday = time.Tuesday

type SlotState struct {
	Label string `json:"label"`

	// Booked: some non-cancelled appointment holds the slot.
	Booked bool `json:"booked"`

	// Every appointment in the bucket, cancelled ones included;
	// unassigned bookings stack, so this can hold several.
	Appointments []models.Appointment `json:"appointments,omitempty"`
}

type DayAvailability struct {
	Date   string      `json:"date"`
	Closed bool        `json:"closed"`
	Slots  []SlotState `json:"slots"`
}

// GetAvailability renders the full slot grid for one day so clients
// don't re-implement the slot codec.
type GetAvailability struct {
	listByDay *ListByDay
	loc       *time.Location

	openHour    int
	closeHour   int
	slotMinutes int
}

func NewGetAvailability(
	listByDay *ListByDay,
	loc *time.Location,
	openHour, closeHour, slotMinutes int,
) *GetAvailability {
	return &GetAvailability{
		listByDay:   listByDay,
		loc:         loc,
		openHour:    openHour,
		closeHour:   closeHour,
		slotMinutes: slotMinutes,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	now time.Time,
) (*DayAvailability, error) {

	day, err := time.ParseInLocation(timeslot.DateLayout, date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	out := &DayAvailability{Date: date}

	today := timeslot.DateKey(now, uc.loc)
	if day.Weekday() == closedWeekday || date < today {
		out.Closed = true
		return out, nil
	}

	appts, err := uc.listByDay.Execute(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, label := range timeslot.Labels(uc.openHour, uc.closeHour, uc.slotMinutes) {
		bucket, err := domain.SlotAppointments(appts, date, label, uc.loc)
		if err != nil {
			return nil, err
		}

		booked := false
		for _, ap := range bucket {
			if domain.Status(ap.Status) != domain.StatusCancelled {
				booked = true
				break
			}
		}

		out.Slots = append(out.Slots, SlotState{
			Label:        label,
			Booked:       booked,
			Appointments: bucket,
		})
	}

	return out, nil
}
