package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	ucappointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
)

type AppointmentGormRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewAppointmentGormRepository(db *gorm.DB, lockTimeout time.Duration) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, "provider_not_found", "Provider not found.")
	}
	return &p, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	providerID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service_not_found", "Service not found.")
	}
	return &s, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	providerID uint,
	clientID uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", clientID, providerID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "client_not_found", "Client not found.")
	}
	return &c, nil
}

func (r *AppointmentGormRepository) findClientByEmail(
	ctx context.Context,
	providerID uint,
	email string,
) (*models.Client, error) {

	var found []models.Client
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND LOWER(email) = LOWER(?)", providerID, email).
		Order("id ASC").
		Limit(1).
		Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *AppointmentGormRepository) FindOrCreateClient(
	ctx context.Context,
	client *models.Client,
) (*models.Client, bool, error) {

	existing, err := r.findClientByEmail(ctx, client.ProviderID, client.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created := *client
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		if !isUniqueViolation(err) {
			return nil, false, err
		}
		// lost the race to a concurrent booking with the same email
		existing, err := r.findClientByEmail(ctx, client.ProviderID, client.Email)
		if err != nil {
			return nil, false, fmt.Errorf("client lookup after unique violation: %w", err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("client %q vanished after unique violation", client.Email)
		}
		return existing, false, nil
	}

	return &created, true, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetRule(
	ctx context.Context,
	providerID uint,
	weekday time.Weekday,
) (*models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, int(weekday)).
		Limit(1).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return &rules[0], nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActive(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("provider_id = ? AND date = ? AND status <> ?", providerID, date, domain.StatusCancelled).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	providerID uint,
	filter ucappointment.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("provider_id = ?", providerID)

	if filter.FromDate != "" {
		q = q.Where("date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("date <= ?", filter.ToDate)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC").
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Ledger (only valid inside WithinDay)
// --------------------------------------------------

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	db := r.db.WithContext(ctx)

	var ap models.Appointment
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found", "Appointment not found.")
	}

	if err := db.First(&ap.Service, ap.ServiceID).Error; err != nil {
		return nil, err
	}
	if err := db.First(&ap.Client, ap.ClientID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) Insert(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) Save(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// WithinDay serializes all writers of one provider-day. On postgres this is a
// transaction-scoped advisory lock keyed by (provider, day number); waiting
// longer than lockTimeout surfaces as a booking conflict. Other dialects rely
// on the transaction alone.
func (r *AppointmentGormRepository) WithinDay(
	ctx context.Context,
	providerID uint,
	date string,
	fn func(ucappointment.Ledger) error,
) error {

	day, err := availability.ParseDate(date)
	if err != nil {
		return httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if r.lockTimeout > 0 {
				if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())).Error; err != nil {
					return err
				}
			}
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?::int, ?::int)", int32(providerID), dayNumber(day)).Error; err != nil {
				return err
			}
		}

		return fn(&AppointmentGormRepository{db: tx, lockTimeout: r.lockTimeout})
	})

	return classify(err)
}

func dayNumber(day time.Time) int32 {
	return int32(day.Unix() / 86400)
}

// Compile-time check
var (
	_ ucappointment.Repository = (*AppointmentGormRepository)(nil)
	_ ucappointment.Ledger     = (*AppointmentGormRepository)(nil)
)
