package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	jwtSecret   string
	checkDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		db:          db,
		jwtSecret:   jwtSecret,
		checkDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Phone        string `json:"phone"`
	Timezone     string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Timezone must be an IANA name such as Europe/Lisbon.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Provider{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "email_already_registered", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	provider := models.Provider{
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Timezone:     tz,
	}

	if err := h.db.Create(&provider).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, provider.ID, time.Now())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"provider": provider,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	var provider models.Provider
	if err := h.db.
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&provider).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := middleware.GenerateToken(h.jwtSecret, provider.ID, time.Now())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"token":    token,
	})
}
