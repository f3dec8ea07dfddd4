package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/lunanails/salon-scheduler/internal/domain/booking"
	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/httpresp"
	"github.com/lunanails/salon-scheduler/internal/middleware"
	ucBooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC    *ucBooking.CreateBooking
	setStatusUC *ucBooking.SetStatus
	listOwnerUC *ucBooking.ListByOwner
	listDayUC   *ucBooking.ListByDay
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateBooking,
	setStatusUC *ucBooking.SetStatus,
	listOwnerUC *ucBooking.ListByOwner,
	listDayUC *ucBooking.ListByDay,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:    createUC,
		setStatusUC: setStatusUC,
		listOwnerUC: listOwnerUC,
		listDayUC:   listDayUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	NailTechID   *uint  `json:"nail_tech_id"`
	NailTechName string `json:"nail_tech_name"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:       userID,
		Date:         req.Date,
		Time:         req.Time,
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		NailTechID:   req.NailTechID,
		NailTechName: req.NailTechName,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, ap)
}

func writeBookingError(c *gin.Context, err error) {
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		httperr.Conflict(c, "slot_conflict", ce.Error())
		return
	}

	switch {
	case httperr.IsBusiness(err, "user_not_found"):
		httperr.NotFound(c, "user_not_found", "User not found.")
	case httperr.IsBusiness(err, "tech_not_found"):
		httperr.BadRequest(c, "tech_not_found", "Nail tech not found.")
	case httperr.IsBusiness(err, "tech_fields_exclusive"):
		httperr.BadRequest(c, "tech_fields_exclusive", "Provide a nail tech id or a name, not both.")
	case httperr.IsBusiness(err, "missing_customer_name"):
		httperr.BadRequest(c, "missing_customer_name", "Customer name is required.")
	case httperr.IsBusiness(err, "missing_phone_number"):
		httperr.BadRequest(c, "missing_phone_number", "Phone number is required.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time slot.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
	}
}

// ======================================================
// LIST (own bookings, newest first)
// ======================================================

func (h *AppointmentHandler) ListOwn(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	apps, err := h.listOwnerUC.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// LIST BY DAY (any owner)
// ======================================================

func (h *AppointmentHandler) ListByDay(c *gin.Context) {
	date := c.Param("date")

	apps, err := h.listDayUC.Execute(c.Request.Context(), date)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// SET STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.setStatusUC.Execute(c.Request.Context(), userID, uint(id), req.Status)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Status must be confirmed, cancelled or done.")
		case httperr.IsBusiness(err, "invalid_transition"):
			httperr.BadRequest(c, "invalid_transition", "Status change not allowed.")
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		default:
			httperr.Internal(c, "failed_to_update_status", "Failed to update status.")
		}
		return
	}

	c.JSON(200, ap)
}
