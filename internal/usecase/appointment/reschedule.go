package appointment

import (
	"context"

	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type RescheduleInput struct {
	ProviderID    uint
	AppointmentID uint
	Date          string
	Time          string
}

type RescheduleAppointment struct {
	repo      Repository
	admission *Admission
}

func NewRescheduleAppointment(
	repo Repository,
	admission *Admission,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		admission: admission,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	date, start, err := ParseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	// existence check outside the lock so a bad id is a plain 404
	if _, err := uc.repo.GetAppointment(ctx, in.ProviderID, in.AppointmentID); err != nil {
		return nil, err
	}

	actor := in.ProviderID
	if _, err := uc.admission.Reschedule(ctx, provider, in.AppointmentID, date, start, &actor); err != nil {
		return nil, err
	}

	return uc.repo.GetAppointment(ctx, in.ProviderID, in.AppointmentID)
}
