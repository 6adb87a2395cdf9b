package availability

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Repository interface {
	ListRules(
		ctx context.Context,
		providerID uint,
	) ([]models.AvailabilityRule, error)

	// ReplaceRules swaps the provider's whole week atomically.
	ReplaceRules(
		ctx context.Context,
		providerID uint,
		rules []models.AvailabilityRule,
	) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type IntervalDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayDTO struct {
	Weekday   int           `json:"weekday"`
	Enabled   bool          `json:"enabled"`
	Intervals []IntervalDTO `json:"intervals"`
}

type Service struct {
	repo  Repository
	audit Auditor
}

func NewService(repo Repository, auditor Auditor) *Service {
	return &Service{
		repo:  repo,
		audit: auditor,
	}
}

// Week returns all seven weekdays, Sunday first. Days without a stored rule
// come back disabled.
func (s *Service) Week(ctx context.Context, providerID uint) ([]DayDTO, error) {
	rules, err := s.repo.ListRules(ctx, providerID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]models.AvailabilityRule, len(rules))
	for _, r := range rules {
		byDay[r.Weekday] = r
	}

	out := make([]DayDTO, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := DayDTO{Weekday: int(wd), Intervals: []IntervalDTO{}}
		if r, ok := byDay[int(wd)]; ok {
			rule := r.Rule()
			day.Enabled = rule.Enabled
			for _, iv := range rule.Intervals {
				day.Intervals = append(day.Intervals, IntervalDTO{
					Start: domain.FormatClock(iv.Start),
					End:   domain.FormatClock(iv.End),
				})
			}
		}
		out = append(out, day)
	}
	return out, nil
}

// Replace validates the submitted week as a whole and persists it only if
// every day is valid. Weekdays left out of days end up with no rule.
func (s *Service) Replace(ctx context.Context, providerID uint, days []DayDTO) ([]DayDTO, error) {
	rules, err := parseWeek(days)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateWeek(rules); err != nil {
		return nil, err
	}

	rows := make([]models.AvailabilityRule, 0, len(rules))
	for _, r := range rules {
		r = r.Normalize()
		rows = append(rows, models.AvailabilityRule{
			ProviderID: providerID,
			Weekday:    int(r.Weekday),
			Enabled:    r.Enabled,
			Intervals:  r.Intervals,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Weekday < rows[j].Weekday })

	if err := s.repo.ReplaceRules(ctx, providerID, rows); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &providerID,
		Action:     "availability_replaced",
		Entity:     "availability",
		Metadata:   days,
	})

	return s.Week(ctx, providerID)
}

func parseWeek(days []DayDTO) ([]domain.Rule, error) {
	rules := make([]domain.Rule, 0, len(days))

	for _, d := range days {
		r := domain.Rule{
			Weekday: time.Weekday(d.Weekday),
			Enabled: d.Enabled,
		}

		for _, iv := range d.Intervals {
			start, err := domain.ParseClock(iv.Start)
			if err != nil {
				return nil, httperr.InvalidAvailability("invalid_interval", "Interval start must be HH:MM.")
			}
			end, err := domain.ParseClock(iv.End)
			if err != nil {
				return nil, httperr.InvalidAvailability("invalid_interval", "Interval end must be HH:MM.")
			}
			r.Intervals = append(r.Intervals, domain.Interval{Start: start, End: end})
		}

		rules = append(rules, r)
	}
	return rules, nil
}
