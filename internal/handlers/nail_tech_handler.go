package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lunanails/salon-scheduler/internal/httperr"
	"github.com/lunanails/salon-scheduler/internal/httpresp"
	ucBooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

type NailTechHandler struct {
	listUC *ucBooking.ListNailTechs
}

func NewNailTechHandler(listUC *ucBooking.ListNailTechs) *NailTechHandler {
	return &NailTechHandler{listUC: listUC}
}

func (h *NailTechHandler) List(c *gin.Context) {
	techs, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_nail_techs", "Failed to list nail techs.")
		return
	}

	httpresp.List(c, techs)
}
