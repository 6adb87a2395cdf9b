package dto

import (
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type AppointmentClientDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type AppointmentServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type AppointmentDTO struct {
	ID        uint                  `json:"id"`
	Date      string                `json:"date"`
	Time      string                `json:"time"`
	EndTime   string                `json:"end_time"`
	Status    string                `json:"status"`
	Notes     string                `json:"notes"`
	Client    AppointmentClientDTO  `json:"client"`
	Service   AppointmentServiceDTO `json:"service"`
	CreatedAt time.Time             `json:"created_at"`
}

// FromAppointment expects Client and Service to be loaded.
func FromAppointment(ap *models.Appointment) AppointmentDTO {
	w := ap.Window()

	return AppointmentDTO{
		ID:      ap.ID,
		Date:    ap.Date,
		Time:    availability.FormatClock(w.Start),
		EndTime: availability.FormatClock(w.End),
		Status:  string(ap.Status),
		Notes:   ap.Notes,
		Client: AppointmentClientDTO{
			ID:    ap.Client.ID,
			Name:  ap.Client.Name,
			Email: ap.Client.Email,
			Phone: ap.Client.Phone,
		},
		Service: AppointmentServiceDTO{
			ID:          ap.Service.ID,
			Name:        ap.Service.Name,
			DurationMin: ap.Service.DurationMin,
			Price:       ap.Service.Price,
		},
		CreatedAt: ap.CreatedAt,
	}
}

func FromAppointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, FromAppointment(&list[i]))
	}
	return out
}

type TimeSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
