package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	DurationMin  int     `json:"duration_min" binding:"required,min=1,max=1440"`
	Price        float64 `json:"price" binding:"min=0"`
	Active       *bool   `json:"active,omitempty"`
}

// Duration is fixed at creation; existing appointments derive their end from it.
type UpdateServiceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Requirements *string  `json:"requirements,omitempty"`
	DurationMin  *int     `json:"duration_min,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("provider_id = ?", providerID)

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Service name is required.")
		return
	}

	service := models.Service{
		ProviderID:   middleware.ProviderID(c),
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		Requirements: strings.TrimSpace(req.Requirements),
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Active:       req.Active == nil || *req.Active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND provider_id = ?", id, middleware.ProviderID(c)).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.DurationMin != nil && *req.DurationMin != service.DurationMin {
		httperr.BadRequest(c, "duration_immutable", "Service duration cannot change; create a new service instead.")
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Service name is required.")
			return
		}
		service.Name = name
	}
	if req.Description != nil {
		service.Description = strings.TrimSpace(*req.Description)
	}
	if req.Requirements != nil {
		service.Requirements = strings.TrimSpace(*req.Requirements)
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}
