package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type Source string

const (
	SourceOwner  Source = "owner"
	SourcePublic Source = "public"
)

// ======================================================
// INPUT
// ======================================================

type AdmitInput struct {
	Provider *models.Provider
	Client   *models.Client
	Service  *models.Service

	Date  string
	Start int
	Notes string

	Source  Source
	ActorID *uint
}

// ======================================================
// ADMISSION
// ======================================================

// Admission is the single write path into the appointment ledger. Every
// create and reschedule goes through it, so availability and overlap are
// always checked against one consistent view of the provider-day.
type Admission struct {
	repo  Repository
	audit Auditor
	now   func() time.Time
}

type AdmissionOption func(*Admission)

func WithClock(now func() time.Time) AdmissionOption {
	return func(a *Admission) {
		a.now = now
	}
}

func NewAdmission(
	repo Repository,
	auditor Auditor,
	opts ...AdmissionOption,
) *Admission {
	a := &Admission{
		repo:  repo,
		audit: auditor,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Admission) Now() time.Time {
	return a.now()
}

func (a *Admission) Admit(
	ctx context.Context,
	in AdmitInput,
) (*models.Appointment, error) {

	if err := checkService(in.Service); err != nil {
		a.record(in.Source, err)
		return nil, err
	}

	window := availability.Interval{
		Start: in.Start,
		End:   in.Start + in.Service.DurationMin,
	}

	if err := a.checkLeadTime(in.Provider, in.Date, in.Start); err != nil {
		a.record(in.Source, err)
		return nil, err
	}

	var created *models.Appointment

	err := a.repo.WithinDay(ctx, in.Provider.ID, in.Date, func(l Ledger) error {
		if err := checkWorkingHours(ctx, l, in.Provider.ID, in.Date, window); err != nil {
			return err
		}
		if err := checkConflicts(ctx, l, in.Provider.ID, in.Date, window, 0); err != nil {
			return err
		}

		ap := &models.Appointment{
			ProviderID:  in.Provider.ID,
			ClientID:    in.Client.ID,
			ServiceID:   in.Service.ID,
			Date:        in.Date,
			StartMinute: in.Start,
			Status:      domain.InitialStatus(),
			Notes:       in.Notes,
		}
		if err := l.Insert(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	a.record(in.Source, err)
	if err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			a.audit.Dispatch(audit.Event{
				ProviderID: in.Provider.ID,
				ActorID:    in.ActorID,
				Action:     "booking_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"date":   in.Date,
					"time":   availability.FormatClock(in.Start),
					"source": in.Source,
				},
			})
		}
		return nil, err
	}

	created.Client = *in.Client
	created.Service = *in.Service

	a.audit.Dispatch(audit.Event{
		ProviderID: in.Provider.ID,
		ActorID:    in.ActorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &created.ID,
		Metadata: map[string]any{
			"source": in.Source,
		},
	})

	return created, nil
}

// Reschedule moves an appointment to a new date and start. The new window is
// admitted like a fresh booking except that the appointment's own reservation
// is ignored. On failure the appointment is left untouched.
func (a *Admission) Reschedule(
	ctx context.Context,
	provider *models.Provider,
	appointmentID uint,
	date string,
	start int,
	actorID *uint,
) (*models.Appointment, error) {

	if err := a.checkLeadTime(provider, date, start); err != nil {
		return nil, err
	}

	var moved *models.Appointment
	var from string

	err := a.repo.WithinDay(ctx, provider.ID, date, func(l Ledger) error {
		ap, err := l.LockAppointment(ctx, provider.ID, appointmentID)
		if err != nil {
			return err
		}

		if err := domain.Transition(ap.Status, domain.StatusRescheduled); err != nil {
			return err
		}
		if err := checkService(&ap.Service); err != nil {
			return err
		}

		window := availability.Interval{
			Start: start,
			End:   start + ap.Service.DurationMin,
		}

		if err := checkWorkingHours(ctx, l, provider.ID, date, window); err != nil {
			return err
		}
		if err := checkConflicts(ctx, l, provider.ID, date, window, ap.ID); err != nil {
			return err
		}

		from = ap.Date + " " + availability.FormatClock(ap.StartMinute)

		ap.Date = date
		ap.StartMinute = start
		ap.Status = domain.StatusRescheduled
		if err := l.Save(ctx, ap); err != nil {
			return err
		}

		moved = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncTransition(string(domain.StatusRescheduled))
	a.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		ActorID:    actorID,
		Action:     "appointment_rescheduled",
		Entity:     "appointment",
		EntityID:   &moved.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   date + " " + availability.FormatClock(start),
		},
	})

	return moved, nil
}

// ======================================================
// CHECKS
// ======================================================

func checkService(s *models.Service) error {
	if !s.Active {
		return httperr.Validation("service_inactive", "This service is not currently offered.")
	}
	if s.DurationMin <= 0 {
		return httperr.Validation("invalid_service_duration", "Service duration must be positive.")
	}
	return nil
}

// EarliestStart is the first provider-local wall-clock instant that may still be
// booked, expressed on a UTC calendar so it compares directly with ParseDate output.
func EarliestStart(provider *models.Provider, now time.Time) time.Time {
	today, minute := timezone.LocalClock(now, provider.Timezone)
	base, _ := availability.ParseDate(today)

	lead := provider.MinAdvanceMinutes
	if lead < 0 {
		lead = 0
	}

	return base.Add(time.Duration(minute+lead) * time.Minute)
}

func (a *Admission) checkLeadTime(provider *models.Provider, date string, start int) error {
	day, err := availability.ParseDate(date)
	if err != nil {
		return httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	candidate := day.Add(time.Duration(start) * time.Minute)
	if candidate.Before(EarliestStart(provider, a.now())) {
		return httperr.InvalidSlot("too_soon", "The requested time is in the past or inside the minimum notice period.")
	}
	return nil
}

func checkWorkingHours(
	ctx context.Context,
	r DayReader,
	providerID uint,
	date string,
	window availability.Interval,
) error {
	day, err := availability.ParseDate(date)
	if err != nil {
		return httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	rule, err := r.GetRule(ctx, providerID, day.Weekday())
	if err != nil {
		return err
	}
	if rule == nil {
		return httperr.InvalidSlot("outside_working_hours", "The provider does not work on this day.")
	}

	if _, ok := rule.Rule().Window(window); !ok {
		return httperr.InvalidSlot("outside_working_hours", "The requested time is outside working hours.")
	}
	return nil
}

func checkConflicts(
	ctx context.Context,
	r DayReader,
	providerID uint,
	date string,
	window availability.Interval,
	exclude uint,
) error {
	active, err := r.ListActive(ctx, providerID, date)
	if err != nil {
		return err
	}

	reservations := make([]domain.Reservation, 0, len(active))
	for i := range active {
		reservations = append(reservations, active[i].Reservation())
	}

	if _, hit := domain.FindConflict(window, reservations, exclude); hit {
		return httperr.Conflict("time_conflict", "The requested time overlaps an existing appointment.")
	}
	return nil
}

func (a *Admission) record(source Source, err error) {
	outcome := "admitted"
	if err != nil {
		switch httperr.KindOf(err) {
		case httperr.KindConflict:
			outcome = "conflict"
		case httperr.KindInvalidSlot:
			outcome = "invalid_slot"
		case httperr.KindValidation, httperr.KindNotFound:
			outcome = "rejected"
		default:
			outcome = "error"
		}
	}
	metrics.IncAdmission(string(source), outcome)
}
