package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	slots *ucappointment.GetSlots
	book  *ucappointment.BookPublic
}

func NewPublicHandler(
	db *gorm.DB,
	slots *ucappointment.GetSlots,
	book *ucappointment.BookPublic,
) *PublicHandler {
	return &PublicHandler{
		db:    db,
		slots: slots,
		book:  book,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	Whatsapp  string `json:"whatsapp"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
	Notes     string `json:"notes"`
}

type PublicServiceDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	DurationMin  int     `json:"duration_min"`
	Price        float64 `json:"price"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	providerID, ok := uintParam(c, "providerId")
	if !ok {
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Provider not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	var services []models.Service
	if err := h.db.
		Where("provider_id = ? AND active = ?", providerID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]PublicServiceDTO, 0, len(services))
	for _, s := range services {
		out = append(out, PublicServiceDTO{
			ID:           s.ID,
			Name:         s.Name,
			Description:  s.Description,
			Requirements: s.Requirements,
			DurationMin:  s.DurationMin,
			Price:        s.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": gin.H{
			"id":            provider.ID,
			"name":          provider.Name,
			"business_name": provider.BusinessName,
			"timezone":      provider.Timezone,
		},
		"services": out,
	})
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	providerID, ok := uintParam(c, "providerId")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), ucappointment.SlotsInput{
		ProviderID: providerID,
		ServiceID:  serviceID,
		Date:       c.Query("date"),
		Public:     true,
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

////////////////////////////////////////////////////////
// BOOK
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	providerID, ok := uintParam(c, "providerId")
	if !ok {
		return
	}

	var req PublicBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucappointment.BookPublicInput{
		ProviderID: providerID,
		ServiceID:  req.ServiceID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Whatsapp:   req.Whatsapp,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}
