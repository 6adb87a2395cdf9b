package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListRules(ctx context.Context, providerID uint) ([]models.AvailabilityRule, error) {
	args := m.Called(ctx, providerID)
	rules, _ := args.Get(0).([]models.AvailabilityRule)
	return rules, args.Error(1)
}

func (m *mockRepo) ReplaceRules(ctx context.Context, providerID uint, rules []models.AvailabilityRule) error {
	args := m.Called(ctx, providerID, rules)
	return args.Error(0)
}

type nopAuditor struct {
	events []audit.Event
}

func (a *nopAuditor) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

func TestReplace_RejectsOverlapWithoutPersisting(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, &nopAuditor{})

	_, err := svc.Replace(context.Background(), 1, []DayDTO{
		{Weekday: 1, Enabled: true, Intervals: []IntervalDTO{{"09:00", "11:00"}, {"10:00", "12:00"}}},
	})

	require.Error(t, err)
	assert.Equal(t, httperr.KindInvalidAvailability, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "overlapping_intervals"))
	repo.AssertNotCalled(t, "ReplaceRules", mock.Anything, mock.Anything, mock.Anything)
}

func TestReplace_Rejections(t *testing.T) {
	cases := []struct {
		name string
		days []DayDTO
		code string
	}{
		{"bad clock", []DayDTO{{Weekday: 1, Enabled: true, Intervals: []IntervalDTO{{"9am", "11:00"}}}}, "invalid_interval"},
		{"end before start", []DayDTO{{Weekday: 1, Enabled: true, Intervals: []IntervalDTO{{"11:00", "09:00"}}}}, "invalid_interval"},
		{"weekday out of range", []DayDTO{{Weekday: 7, Enabled: true}}, "invalid_weekday"},
		{"duplicate weekday", []DayDTO{{Weekday: 2}, {Weekday: 2}}, "duplicate_weekday"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			_, err := NewService(repo, &nopAuditor{}).Replace(context.Background(), 1, tc.days)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			repo.AssertNotCalled(t, "ReplaceRules", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReplace_PersistsNormalizedWeek(t *testing.T) {
	repo := &mockRepo{}
	auditor := &nopAuditor{}
	svc := NewService(repo, auditor)

	want := []models.AvailabilityRule{
		{ProviderID: 1, Weekday: 1, Enabled: true, Intervals: []domain.Interval{{Start: 540, End: 720}, {Start: 780, End: 1080}}},
		{ProviderID: 1, Weekday: 3, Enabled: false},
	}
	repo.On("ReplaceRules", mock.Anything, uint(1), want).Return(nil).Once()
	repo.On("ListRules", mock.Anything, uint(1)).Return(want, nil).Once()

	week, err := svc.Replace(context.Background(), 1, []DayDTO{
		// disabled days drop their intervals
		{Weekday: 3, Enabled: false, Intervals: []IntervalDTO{{"09:00", "10:00"}}},
		{Weekday: 1, Enabled: true, Intervals: []IntervalDTO{{"09:00", "12:00"}, {"13:00", "18:00"}}},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	require.Len(t, week, 7)
	assert.Equal(t, 0, week[0].Weekday)
	assert.False(t, week[0].Enabled)
	assert.Empty(t, week[0].Intervals)
	assert.True(t, week[1].Enabled)
	assert.Equal(t, []IntervalDTO{{"09:00", "12:00"}, {"13:00", "18:00"}}, week[1].Intervals)
	assert.False(t, week[3].Enabled)

	require.Len(t, auditor.events, 1)
	assert.Equal(t, "availability_replaced", auditor.events[0].Action)
}
