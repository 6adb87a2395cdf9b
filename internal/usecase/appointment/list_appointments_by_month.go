package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

type ListAppointmentsByMonth struct {
	repo Repository
}

func NewListAppointmentsByMonth(
	repo Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	providerID uint,
	year int,
	month int,
) ([]dto.AppointmentDTO, error) {

	if year < 1970 || month < 1 || month > 12 {
		return nil, httperr.Validation("invalid_month", "Provide year and month (1-12).")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	appointments, err := uc.repo.ListAppointments(ctx, providerID, ListFilter{
		FromDate: first.Format(availability.DateLayout),
		ToDate:   last.Format(availability.DateLayout),
	})
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
