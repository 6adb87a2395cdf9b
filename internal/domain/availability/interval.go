package availability

import (
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

const DateLayout = "2006-01-02"

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Len() int {
	return i.End - i.Start
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

// ParseClock parses "HH:MM" into minutes since midnight. "24:00" is accepted as end of day.
func ParseClock(hm string) (int, error) {
	if hm == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
