package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucappointment.CreatePrivateAppointment
	status     *ucappointment.ChangeStatus
	reschedule *ucappointment.RescheduleAppointment
	list       *ucappointment.ListAppointments
	byMonth    *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *ucappointment.CreatePrivateAppointment,
	status *ucappointment.ChangeStatus,
	reschedule *ucappointment.RescheduleAppointment,
	list *ucappointment.ListAppointments,
	byMonth *ucappointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		status:     status,
		reschedule: reschedule,
		list:       list,
		byMonth:    byMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreatePrivateAppointmentInput{
		ProviderID:  middleware.ProviderID(c),
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	out, err := h.list.Execute(
		c.Request.Context(),
		middleware.ProviderID(c),
		c.Query("date"),
		c.Query("status"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_month", "Provide year and month (1-12).")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), middleware.ProviderID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), middleware.ProviderID(c), id, to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAppointment(ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucappointment.RescheduleInput{
		ProviderID:    middleware.ProviderID(c),
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAppointment(ap))
}
