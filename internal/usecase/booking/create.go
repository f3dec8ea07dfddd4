package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lunanails/salon-scheduler/internal/audit"
	"github.com/lunanails/salon-scheduler/internal/cache"
	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint

	Date string // "2006-01-02", salon-local
	Time string // slot label, "3:04 PM"

	CustomerName string
	PhoneNumber  string

	// Mutually exclusive: an existing tech by id, or a tech by name
	// created lazily on first reference. Both empty books the slot
	// unassigned.
	NailTechID   *uint
	NailTechName string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.DayCache
	loc   *time.Location
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.DayCache,
	loc *time.Location,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	// 1. Required contact fields; tech fields are exclusive.
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, httperr.ErrBusiness("missing_customer_name")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		return nil, httperr.ErrBusiness("missing_phone_number")
	}
	if in.NailTechID != nil && strings.TrimSpace(in.NailTechName) != "" {
		return nil, httperr.ErrBusiness("tech_fields_exclusive")
	}

	// 2. Owner must exist.
	if _, err := uc.repo.GetUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	// 3. Slot instant in the salon zone, minute-truncated.
	instant, err := timeslot.ToUTC(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	instant = instant.Truncate(time.Minute)

	// 4. Resolve the assigned tech.
	techID, techName, err := uc.resolveTech(ctx, in)
	if err != nil {
		return nil, err
	}

	// 5. Occupancy against a fresh read of the day; client-supplied
	// slot state is never trusted. Unassigned bookings stack, no check.
	if techID != nil {
		start, end, err := timeslot.DayWindow(in.Date, uc.loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		appts, err := uc.repo.ListAppointmentsForWindow(ctx, start, end)
		if err != nil {
			return nil, err
		}

		if domain.InstantOccupiedByTech(appts, instant, *techID) {
			uc.auditConflict(in, *techID)
			return nil, &domain.ConflictError{
				TechID:   *techID,
				TechName: techName,
				Date:     in.Date,
				Label:    in.Time,
			}
		}
	}

	// 6. Persist; the repository rechecks under lock and the store's
	// unique index backstops concurrent writers.
	ap := &models.Appointment{
		UserID:       in.UserID,
		StartTime:    instant,
		CustomerName: strings.TrimSpace(in.CustomerName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Status:       string(domain.InitialStatus()),
		NailTechID:   techID,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		var ce *domain.ConflictError
		if errors.As(err, &ce) {
			ce.Date = in.Date
			ce.Label = in.Time
			uc.auditConflict(in, ce.TechID)
			return nil, ce
		}
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, in.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// Return with the tech preloaded.
	if full, err := uc.repo.GetAppointmentByID(ctx, ap.ID); err == nil {
		return full, nil
	}
	return ap, nil
}

func (uc *CreateBooking) resolveTech(
	ctx context.Context,
	in CreateBookingInput,
) (*uint, string, error) {

	if in.NailTechID != nil {
		tech, err := uc.repo.GetNailTechByID(ctx, *in.NailTechID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", httperr.ErrBusiness("tech_not_found")
			}
			return nil, "", err
		}
		return &tech.ID, tech.Name, nil
	}

	name := strings.TrimSpace(in.NailTechName)
	if name == "" {
		return nil, "", nil
	}

	tech, created, err := uc.repo.GetOrCreateNailTech(ctx, name)
	if err != nil {
		return nil, "", err
	}

	if created {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.UserID,
			Action:   "nail_tech_created",
			Entity:   "nail_tech",
			EntityID: &tech.ID,
		})
	}

	return &tech.ID, tech.Name, nil
}

func (uc *CreateBooking) auditConflict(in CreateBookingInput, techID uint) {
	uc.audit.Dispatch(audit.Event{
		UserID: &in.UserID,
		Action: "appointment_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"date":         in.Date,
			"time":         in.Time,
			"nail_tech_id": techID,
		},
	})
}
