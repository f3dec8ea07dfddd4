package booking

import (
	"context"
	"time"

	"github.com/lunanails/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- NailTech --------
	GetNailTechByID(
		ctx context.Context,
		id uint,
	) (*models.NailTech, error)

	// GetOrCreateNailTech resolves a tech by exact name, creating it
	// on first reference. The bool reports whether a create happened.
	GetOrCreateNailTech(
		ctx context.Context,
		name string,
	) (*models.NailTech, bool, error)

	ListNailTechs(
		ctx context.Context,
	) ([]models.NailTech, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment persists ap atomically: the occupancy recheck
	// for an assigned tech and the insert run in one transaction, and
	// the store's partial unique index backstops concurrent writers.
	// A lost slot surfaces as *ConflictError; no partial write occurs.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListAppointmentsForOwner(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForWindow(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
