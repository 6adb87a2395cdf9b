package models

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint `gorm:"index:idx_appointment_provider_date;not null" json:"provider_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Date is the provider-local calendar day, YYYY-MM-DD.
	Date        string             `gorm:"size:10;index:idx_appointment_provider_date;not null" json:"date"`
	StartMinute int                `gorm:"not null" json:"start_minute"`
	Status      appointment.Status `gorm:"size:20;default:'pending'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Window is [start, start+duration). It needs Service to be loaded.
func (a *Appointment) Window() availability.Interval {
	return availability.Interval{
		Start: a.StartMinute,
		End:   a.StartMinute + a.Service.DurationMin,
	}
}

func (a *Appointment) Reservation() appointment.Reservation {
	return appointment.Reservation{
		AppointmentID: a.ID,
		Window:        a.Window(),
	}
}
