package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/metrics"
)

type SlotsInput struct {
	ProviderID uint
	ServiceID  uint
	Date       string

	// Public hides inactive services.
	Public bool
}

// GetSlots lists the bookable start times for a service on a date: the
// rule's slot grid minus anything overlapping an active appointment and
// anything earlier than the provider's notice period.
type GetSlots struct {
	repo Repository
	now  func() time.Time
}

func NewGetSlots(repo Repository, admission *Admission) *GetSlots {
	return &GetSlots{
		repo: repo,
		now:  admission.Now,
	}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	in SlotsInput,
) ([]dto.TimeSlotDTO, error) {

	day, err := availability.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}
	date := day.Format(availability.DateLayout)

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ProviderID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if in.Public && !service.Active {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}

	audience := "owner"
	if in.Public {
		audience = "public"
	}
	metrics.IncSlotQuery(audience)

	out := make([]dto.TimeSlotDTO, 0)

	rule, err := uc.repo.GetRule(ctx, in.ProviderID, day.Weekday())
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return out, nil
	}

	grid := availability.GenerateSlots(rule.Rule(), service.DurationMin, provider.SlotStepMinutes)
	if len(grid) == 0 {
		return out, nil
	}

	active, err := uc.repo.ListActive(ctx, in.ProviderID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]availability.Interval, 0, len(active))
	for i := range active {
		busy = append(busy, active[i].Window())
	}

	earliest := EarliestStart(provider, uc.now())

	for _, s := range availability.FreeSlots(grid, busy) {
		if day.Add(time.Duration(s.Start) * time.Minute).Before(earliest) {
			continue
		}
		out = append(out, dto.TimeSlotDTO{
			Start: availability.FormatClock(s.Start),
			End:   availability.FormatClock(s.End),
		})
	}

	return out, nil
}
