package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

func starts(slots []dto.TimeSlotDTO) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGetSlots_SubtractsActiveAppointments(t *testing.T) {
	f := newFixture(t)
	uc := NewGetSlots(f.repo, f.admission)

	slots, err := uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, starts(slots))
	assert.Equal(t, "12:00", slots[len(slots)-1].End)

	_, err = f.admit(t, f.haircut, "10:00")
	require.NoError(t, err)

	slots, err = uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, starts(slots))

	slots, err = uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.coloring.ID, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30", "11:00"}, starts(slots))
}

func TestGetSlots_NoRuleIsEmpty(t *testing.T) {
	f := newFixture(t)

	slots, err := NewGetSlots(f.repo, f.admission).
		Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: "2030-01-08"})
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetSlots_HidesPastStarts(t *testing.T) {
	f := newFixture(t)
	f.repo.addRule(1, time.Tuesday, availability.Interval{Start: 9 * 60, End: 14 * 60})

	// clock is 2030-01-01 12:00
	slots, err := NewGetSlots(f.repo, f.admission).
		Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: "2030-01-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30"}, starts(slots))
}

func TestGetSlots_Errors(t *testing.T) {
	f := newFixture(t)
	f.repo.addService(*withActive(f.haircut, false))
	uc := NewGetSlots(f.repo, f.admission)

	_, err := uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: "2030-13-01"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: monday, Public: true})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	// owners still see their inactive services
	_, err = uc.Execute(context.Background(), SlotsInput{ProviderID: 1, ServiceID: f.haircut.ID, Date: monday})
	assert.NoError(t, err)
}
