package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
	ucavailability "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/availability"
)

type AvailabilityHandler struct {
	availability *ucavailability.Service
	slots        *ucappointment.GetSlots
}

func NewAvailabilityHandler(
	availability *ucavailability.Service,
	slots *ucappointment.GetSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		slots:        slots,
	}
}

type ReplaceAvailabilityRequest struct {
	Days []ucavailability.DayDTO `json:"days" binding:"required"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	week, err := h.availability.Week(c.Request.Context(), middleware.ProviderID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": week})
}

func (h *AvailabilityHandler) Replace(c *gin.Context) {
	var req ReplaceAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	week, err := h.availability.Replace(c.Request.Context(), middleware.ProviderID(c), req.Days)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": week})
}

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), ucappointment.SlotsInput{
		ProviderID: middleware.ProviderID(c),
		ServiceID:  serviceID,
		Date:       c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}
