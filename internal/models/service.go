package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  string  `gorm:"size:255" json:"description"`
	Requirements string  `gorm:"size:255" json:"requirements"`
	DurationMin  int     `gorm:"not null" json:"duration_min"`
	Price        float64 `json:"price"`
	Active       bool    `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
