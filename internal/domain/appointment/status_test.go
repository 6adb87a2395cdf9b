package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

func TestTransitions(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:     {StatusConfirmed, StatusCancelled, StatusRescheduled},
		StatusConfirmed:   {StatusCompleted, StatusCancelled, StatusRescheduled},
		StatusRescheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled},
		StatusCompleted:   nil,
		StatusCancelled:   nil,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)

			err := Transition(from, to)
			if want {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
			}
		}
	}
}

func TestStatusFlags(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusCompleted.Active())
	assert.True(t, StatusRescheduled.Active())
	assert.False(t, StatusCancelled.Active())

	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = ParseStatus("scheduled")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestFindConflict(t *testing.T) {
	existing := []Reservation{
		{AppointmentID: 1, Window: availability.Interval{Start: 600, End: 630}},
		{AppointmentID: 2, Window: availability.Interval{Start: 720, End: 780}},
	}

	tests := []struct {
		name      string
		candidate availability.Interval
		exclude   uint
		wantID    uint
		wantHit   bool
	}{
		{"overlaps start", availability.Interval{Start: 615, End: 645}, 0, 1, true},
		{"touching end is free", availability.Interval{Start: 630, End: 660}, 0, 0, false},
		{"touching start is free", availability.Interval{Start: 570, End: 600}, 0, 0, false},
		{"covers whole", availability.Interval{Start: 700, End: 800}, 0, 2, true},
		{"own reservation skipped", availability.Interval{Start: 600, End: 630}, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, hit := FindConflict(tt.candidate, existing, tt.exclude)
			assert.Equal(t, tt.wantHit, hit)
			assert.Equal(t, tt.wantID, r.AppointmentID)
		})
	}
}
