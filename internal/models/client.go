package models

import "time"

// Client is an end customer of a provider. Clients have no login.
type Client struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Whatsapp string `gorm:"size:20" json:"whatsapp"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
