package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunanails/salon-scheduler/internal/httperr"
	ucBooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

type AvailabilityHandler struct {
	availabilityUC *ucBooking.GetAvailability
}

func NewAvailabilityHandler(availabilityUC *ucBooking.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

// Get renders the slot grid for one day: every label with its booked
// state and the appointments stacked on it.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	day, err := h.availabilityUC.Execute(c.Request.Context(), date, time.Now())
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		httperr.Internal(c, "failed_to_load_availability", "Failed to load availability.")
		return
	}

	c.JSON(200, day)
}
