package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

type ClientHandler struct {
	db   *gorm.DB
	repo ucappointment.Repository
}

func NewClientHandler(db *gorm.DB, repo ucappointment.Repository) *ClientHandler {
	return &ClientHandler{db: db, repo: repo}
}

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Notes    string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("provider_id = ?", providerID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE
// ======================================================

// Create returns 200 with the existing record when the email is already a client.
func (h *ClientHandler) Create(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client := models.Client{
		ProviderID: providerID,
		Name:       strings.TrimSpace(req.Name),
		Email:      validators.NormalizeEmail(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Whatsapp:   strings.TrimSpace(req.Whatsapp),
		Notes:      strings.TrimSpace(req.Notes),
	}
	if client.Name == "" {
		httperr.BadRequest(c, "name_required", "Client name is required.")
		return
	}

	if client.Email == "" {
		if err := h.db.Create(&client).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, client)
		return
	}

	if !validators.IsEmailFormatValid(client.Email) {
		httperr.BadRequest(c, "invalid_email", "Client email is not valid.")
		return
	}

	saved, created, err := h.repo.FindOrCreateClient(c.Request.Context(), &client)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}
