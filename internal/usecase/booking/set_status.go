package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lunanails/salon-scheduler/internal/audit"
	"github.com/lunanails/salon-scheduler/internal/cache"
	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

type SetStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	cache  *cache.DayCache
	loc    *time.Location
	strict bool
}

func NewSetStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.DayCache,
	loc *time.Location,
	strict bool,
) *SetStatus {
	return &SetStatus{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		loc:    loc,
		strict: strict,
	}
}

func (uc *SetStatus) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	// Validate before touching the store.
	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if err := domain.CanTransition(domain.Status(ap.Status), status, uc.strict); err != nil {
		return nil, err
	}

	ap.Status = string(status)
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelling frees the slot for its tech; either way the day view
	// changed.
	uc.cache.InvalidateDay(ctx, timeslot.DateKey(ap.StartTime, uc.loc))

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_status_" + string(status),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
