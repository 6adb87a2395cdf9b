package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/appointment-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	"github.com/BruksfildServices01/appointment-scheduler/internal/ratelimit"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/availability"
)

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Limiter  ratelimit.Limiter
	Registry *prometheus.Registry

	// Options for the admission clock; tests pin "now".
	AdmissionOptions []ucAppointment.AdmissionOption
}

// RegisterRoutes wires the whole API onto r. It fails when the trusted proxy
// list cannot be parsed.
func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================

	// ClientIP keys the public rate limit; only listed proxies may override it.
	if err := r.SetTrustedProxies(d.Config.TrustedProxies()); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(d.Config.AllowedOrigins()),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, d.Config.LockTimeout())
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)

	metrics.Register(d.Registry)

	// ======================================================
	// USE CASES
	// ======================================================
	admission := ucAppointment.NewAdmission(appointmentRepo, d.Audit, d.AdmissionOptions...)

	createAppointmentUC := ucAppointment.NewCreatePrivateAppointment(appointmentRepo, admission)
	changeStatusUC := ucAppointment.NewChangeStatus(appointmentRepo, d.Audit, admission)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, admission)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	slotsUC := ucAppointment.NewGetSlots(appointmentRepo, admission)
	bookPublicUC := ucAppointment.NewBookPublic(appointmentRepo, admission)

	availabilityUC := ucAvailability.NewService(availabilityRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config.JWTSecret)
	meHandler := handlers.NewMeHandler(d.DB, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB, appointmentRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, slotsUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		changeStatusUC,
		rescheduleUC,
		listAppointmentsUC,
		listAppointmentsByMonthUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)
	publicHandler := handlers.NewPublicHandler(d.DB, slotsUC, bookPublicUC)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/providers/:providerId/services", publicHandler.ListServices)
			publicAPI.GET("/providers/:providerId/slots", publicHandler.Slots)
			publicAPI.POST(
				"/appointments/:providerId",
				middleware.RateLimit(d.Limiter, d.Log),
				publicHandler.Book,
			)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("", meHandler.GetMe)
			secured.PATCH("", meHandler.UpdateMe)

			secured.GET("/availability", availabilityHandler.Get)
			secured.PUT("/availability", availabilityHandler.Replace)
			secured.GET("/availability/slots", availabilityHandler.Slots)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
