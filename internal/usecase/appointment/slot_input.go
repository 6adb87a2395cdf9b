package appointment

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// ParseSlot validates a requested "YYYY-MM-DD" / "HH:MM" pair and returns the
// canonical date with the start in minutes since midnight.
func ParseSlot(date, hm string) (string, int, error) {
	day, err := availability.ParseDate(date)
	if err != nil {
		return "", 0, httperr.Validation("invalid_date", "Date must be in YYYY-MM-DD format.")
	}

	start, err := availability.ParseClock(hm)
	if err != nil || start >= availability.MinutesPerDay {
		return "", 0, httperr.Validation("invalid_time", "Time must be in HH:MM format.")
	}

	return day.Format(availability.DateLayout), start, nil
}
