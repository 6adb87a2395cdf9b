package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	ucavailability "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/availability"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) ListRules(
	ctx context.Context,
	providerID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *AvailabilityGormRepository) ReplaceRules(
	ctx context.Context,
	providerID uint,
	rules []models.AvailabilityRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("provider_id = ?", providerID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

var _ ucavailability.Repository = (*AvailabilityGormRepository)(nil)
