package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

type ListAppointments struct {
	repo Repository
}

func NewListAppointments(
	repo Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lists a provider's appointments. An empty date means all dates and
// an empty status means all statuses, cancelled included.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	providerID uint,
	date string,
	status string,
) ([]dto.AppointmentDTO, error) {

	var filter ListFilter

	if date = strings.TrimSpace(date); date != "" {
		day, err := availability.ParseDate(date)
		if err != nil {
			return nil, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
		}
		filter.FromDate = day.Format(availability.DateLayout)
		filter.ToDate = filter.FromDate
	}

	if status = strings.TrimSpace(status); status != "" {
		s, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}

	appointments, err := uc.repo.ListAppointments(ctx, providerID, filter)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
