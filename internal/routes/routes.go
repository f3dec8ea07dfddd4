package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lunanails/salon-scheduler/internal/audit"
	"github.com/lunanails/salon-scheduler/internal/cache"
	"github.com/lunanails/salon-scheduler/internal/config"
	"github.com/lunanails/salon-scheduler/internal/handlers"
	infraRepo "github.com/lunanails/salon-scheduler/internal/infra/repository"
	"github.com/lunanails/salon-scheduler/internal/middleware"
	"github.com/lunanails/salon-scheduler/internal/timezone"
	ucBooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	dayCache := cache.New(cfg.RedisURL)
	loc := timezone.Location(cfg.SalonTimezone)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		dayCache,
		loc,
	)

	setStatusUC := ucBooking.NewSetStatus(
		bookingRepo,
		auditDispatcher,
		dayCache,
		loc,
		cfg.StrictStatusFlow,
	)

	listByOwnerUC := ucBooking.NewListByOwner(bookingRepo)

	listByDayUC := ucBooking.NewListByDay(
		bookingRepo,
		dayCache,
		loc,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		listByDayUC,
		loc,
		cfg.OpenHour,
		cfg.CloseHour,
		cfg.SlotMinutes,
	)

	listTechsUC := ucBooking.NewListNailTechs(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		setStatusUC,
		listByOwnerUC,
		listByDayUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	nailTechHandler := handlers.NewNailTechHandler(listTechsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/nail-techs", nailTechHandler.List)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListOwn)
			secured.GET("/me/availability", availabilityHandler.Get)

			secured.GET("/appointments/day/:date", appointmentHandler.ListByDay)
			secured.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
