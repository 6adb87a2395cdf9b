package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// DayReader reads what admission needs to know about one provider-day.
type DayReader interface {
	// GetRule returns nil, nil when the provider has no rule for the weekday.
	GetRule(
		ctx context.Context,
		providerID uint,
		weekday time.Weekday,
	) (*models.AvailabilityRule, error)

	// ListActive returns the non-cancelled appointments of the day with Service loaded.
	ListActive(
		ctx context.Context,
		providerID uint,
		date string,
	) ([]models.Appointment, error)
}

// Ledger is the appointment ledger as seen from inside a WithinDay critical section.
type Ledger interface {
	DayReader

	LockAppointment(
		ctx context.Context,
		providerID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	Insert(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Save(
		ctx context.Context,
		ap *models.Appointment,
	) error
}

type ListFilter struct {
	FromDate string
	ToDate   string
	Status   domain.Status
}

type Repository interface {
	DayReader

	// -------- Provider --------
	GetProvider(
		ctx context.Context,
		providerID uint,
	) (*models.Provider, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		providerID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		providerID uint,
		clientID uint,
	) (*models.Client, error)

	// FindOrCreateClient matches on (provider, lower(email)); the bool reports creation.
	FindOrCreateClient(
		ctx context.Context,
		client *models.Client,
	) (*models.Client, bool, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		providerID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		providerID uint,
		filter ListFilter,
	) ([]models.Appointment, error)

	// WithinDay runs fn while holding the provider-day exclusively. fn's ledger is only
	// valid during the call; an error from fn rolls everything back.
	WithinDay(
		ctx context.Context,
		providerID uint,
		date string,
		fn func(Ledger) error,
	) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}
