package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// NailTech
// --------------------------------------------------

func (r *BookingGormRepository) GetNailTechByID(
	ctx context.Context,
	id uint,
) (*models.NailTech, error) {

	var tech models.NailTech
	if err := r.db.WithContext(ctx).First(&tech, id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *BookingGormRepository) GetOrCreateNailTech(
	ctx context.Context,
	name string,
) (*models.NailTech, bool, error) {

	var tech models.NailTech
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&tech).Error

	if err == nil {
		return &tech, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	tech = models.NailTech{Name: name}
	if err := r.db.WithContext(ctx).Create(&tech).Error; err != nil {
		// Concurrent first reference to the same name: the unique
		// index wins the race, re-read the existing row.
		if httperr.IsUniqueViolation(err) {
			if err := r.db.WithContext(ctx).
				Where("name = ?", name).
				First(&tech).Error; err != nil {
				return nil, false, err
			}
			return &tech, false, nil
		}
		return nil, false, err
	}

	return &tech, true, nil
}

func (r *BookingGormRepository) ListNailTechs(
	ctx context.Context,
) ([]models.NailTech, error) {

	var techs []models.NailTech
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if ap.NailTechID != nil {
			minute := ap.StartTime.Truncate(time.Minute)

			var conflicts []models.Appointment
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"nail_tech_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
					*ap.NailTechID,
					string(domain.StatusCancelled),
					minute,
					minute.Add(time.Minute),
				).
				Find(&conflicts).Error; err != nil {
				return err
			}

			if len(conflicts) > 0 {
				return r.conflictFor(ctx, ap)
			}
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return r.conflictFor(ctx, ap)
			}
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) conflictFor(
	ctx context.Context,
	ap *models.Appointment,
) *domain.ConflictError {

	ce := &domain.ConflictError{TechID: *ap.NailTechID}
	if tech, err := r.GetNailTechByID(ctx, *ap.NailTechID); err == nil {
		ce.TechName = tech.Name
	}
	return ce
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("NailTech").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Update("status", ap.Status).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForOwner(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("NailTech").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *BookingGormRepository) ListAppointmentsForWindow(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("NailTech").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
