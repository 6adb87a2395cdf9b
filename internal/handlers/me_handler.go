package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type MeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMeHandler(db *gorm.DB, auditor *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, audit: auditor}
}

type UpdateMeRequest struct {
	Name              *string `json:"name,omitempty"`
	BusinessName      *string `json:"business_name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty" binding:"omitempty,min=0,max=43200"`
	SlotStepMinutes   *int    `json:"slot_step_minutes,omitempty" binding:"omitempty,min=5,max=240"`
}

func (h *MeHandler) load(c *gin.Context) (*models.Provider, bool) {
	var provider models.Provider
	if err := h.db.First(&provider, middleware.ProviderID(c)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "provider_not_found", "The account for this token no longer exists.")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &provider, true
}

func (h *MeHandler) GetMe(c *gin.Context) {
	provider, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, provider)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	provider, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Name cannot be empty.")
			return
		}
		provider.Name = name
	}
	if req.BusinessName != nil {
		provider.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.Phone != nil {
		provider.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone must be an IANA name such as Europe/Lisbon.")
			return
		}
		provider.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		provider.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}
	if req.SlotStepMinutes != nil {
		provider.SlotStepMinutes = *req.SlotStepMinutes
	}

	if err := h.db.Save(provider).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		ActorID:    &provider.ID,
		Action:     "settings_updated",
		Entity:     "provider",
		EntityID:   &provider.ID,
		Metadata:   req,
	})

	c.JSON(http.StatusOK, provider)
}
