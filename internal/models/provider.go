package models

import "time"

// Provider is the tenant: the professional who owns services, clients,
// availability and appointments.
type Provider struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	BusinessName string `gorm:"size:100" json:"business_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Timezone          string `gorm:"size:64;default:'UTC'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:0" json:"min_advance_minutes"`
	SlotStepMinutes   int    `gorm:"default:30" json:"slot_step_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
