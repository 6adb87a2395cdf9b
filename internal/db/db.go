package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProduction() {
		level = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}

// Migrate creates or updates the schema. Postgres additionally gets the
// case-insensitive client email index that backs find-or-create.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Provider{},
		&models.Service{},
		&models.Client{},
		&models.AvailabilityRule{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_client_provider_email
			ON clients (provider_id, LOWER(email))
			WHERE email <> ''
		`).Error; err != nil {
			return fmt.Errorf("client email index: %w", err)
		}

		if err := db.Exec(`
			UPDATE providers
			SET timezone = 'UTC'
			WHERE timezone IS NULL OR timezone = ''
		`).Error; err != nil {
			return fmt.Errorf("backfill timezone: %w", err)
		}
	}

	return nil
}
