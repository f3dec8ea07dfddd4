package booking

import (
	"context"
	"time"

	"github.com/lunanails/salon-scheduler/internal/cache"
	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/timeslot"
)

// ListByOwner returns the caller's own bookings, newest slot first.
type ListByOwner struct {
	repo domain.Repository
}

func NewListByOwner(repo domain.Repository) *ListByOwner {
	return &ListByOwner{repo: repo}
}

func (uc *ListByOwner) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForOwner(ctx, userID)
}

// ListByDay returns every booking (any owner) inside one salon-local
// calendar day, ascending. Reads go through the day cache when one is
// configured.
type ListByDay struct {
	repo  domain.Repository
	cache *cache.DayCache
	loc   *time.Location
}

func NewListByDay(
	repo domain.Repository,
	cache *cache.DayCache,
	loc *time.Location,
) *ListByDay {
	return &ListByDay{
		repo:  repo,
		cache: cache,
		loc:   loc,
	}
}

func (uc *ListByDay) Execute(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	start, end, err := timeslot.DayWindow(date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if apps, ok := uc.cache.GetDay(ctx, date); ok {
		return apps, nil
	}

	apps, err := uc.repo.ListAppointmentsForWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	uc.cache.SetDay(ctx, date, apps)
	return apps, nil
}

// ListNailTechs returns all techs alphabetically.
type ListNailTechs struct {
	repo domain.Repository
}

func NewListNailTechs(repo domain.Repository) *ListNailTechs {
	return &ListNailTechs{repo: repo}
}

func (uc *ListNailTechs) Execute(
	ctx context.Context,
) ([]models.NailTech, error) {
	return uc.repo.ListNailTechs(ctx)
}
