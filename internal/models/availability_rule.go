package models

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
)

type AvailabilityRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex:idx_rule_provider_weekday;not null" json:"provider_id"`
	Weekday    int  `gorm:"uniqueIndex:idx_rule_provider_weekday;not null" json:"weekday"`
	Enabled    bool `json:"enabled"`

	Intervals []availability.Interval `gorm:"type:text;serializer:json" json:"intervals"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *AvailabilityRule) Rule() availability.Rule {
	return availability.Rule{
		Weekday:   time.Weekday(r.Weekday),
		Enabled:   r.Enabled,
		Intervals: r.Intervals,
	}.Normalize()
}
