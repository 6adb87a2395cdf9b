package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// ChangeStatus confirms, completes or cancels an appointment. Rescheduling
// carries a new slot and goes through RescheduleAppointment instead.
type ChangeStatus struct {
	repo  Repository
	audit Auditor
	now   func() time.Time
}

func NewChangeStatus(
	repo Repository,
	auditor Auditor,
	admission *Admission,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: auditor,
		now:   admission.Now,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	switch to {
	case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
	case domain.StatusRescheduled:
		return nil, httperr.Validation("reschedule_requires_slot", "Use the reschedule endpoint with a new date and time.")
	default:
		return nil, httperr.Validation("invalid_status", "Unsupported target status.")
	}

	current, err := uc.repo.GetAppointment(ctx, providerID, appointmentID)
	if err != nil {
		return nil, err
	}

	var from domain.Status

	err = uc.repo.WithinDay(ctx, providerID, current.Date, func(l Ledger) error {
		ap, err := l.LockAppointment(ctx, providerID, appointmentID)
		if err != nil {
			return err
		}

		if err := domain.Transition(ap.Status, to); err != nil {
			return err
		}

		from = ap.Status
		stamp(ap, to, uc.now().UTC())

		return l.Save(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(string(to))
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &providerID,
		Action:     "appointment_" + string(to),
		Entity:     "appointment",
		EntityID:   &appointmentID,
		Metadata: map[string]any{
			"from": from,
			"to":   to,
		},
	})

	return uc.repo.GetAppointment(ctx, providerID, appointmentID)
}

func stamp(ap *models.Appointment, to domain.Status, now time.Time) {
	ap.Status = to

	switch to {
	case domain.StatusConfirmed:
		ap.ConfirmedAt = &now
	case domain.StatusCompleted:
		ap.CompletedAt = &now
	case domain.StatusCancelled:
		ap.CancelledAt = &now
	}
}
