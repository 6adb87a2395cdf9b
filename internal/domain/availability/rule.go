package availability

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// Rule is the recurring availability of one weekday.
type Rule struct {
	Weekday   time.Weekday
	Enabled   bool
	Intervals []Interval
}

// Normalize drops the intervals of a disabled rule.
func (r Rule) Normalize() Rule {
	if !r.Enabled {
		r.Intervals = nil
	}
	return r
}

// Window returns the open interval that fully contains w, if any.
func (r Rule) Window(w Interval) (Interval, bool) {
	if !r.Enabled {
		return Interval{}, false
	}
	for _, iv := range r.Intervals {
		if iv.Contains(w) {
			return iv, true
		}
	}
	return Interval{}, false
}

// ValidateRule checks that intervals are in range, sorted and non-overlapping.
func ValidateRule(r Rule) error {
	if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
		return httperr.InvalidAvailability("invalid_weekday", fmt.Sprintf("Weekday %d is out of range.", r.Weekday))
	}

	r = r.Normalize()

	for i, iv := range r.Intervals {
		if iv.Start < 0 || iv.End > MinutesPerDay || iv.Start >= iv.End {
			return httperr.InvalidAvailability(
				"invalid_interval",
				fmt.Sprintf("Interval %s-%s on weekday %d is invalid.", FormatClock(iv.Start), FormatClock(iv.End), r.Weekday),
			)
		}
		if i == 0 {
			continue
		}
		prev := r.Intervals[i-1]
		if iv.Start < prev.Start {
			return httperr.InvalidAvailability(
				"unsorted_intervals",
				fmt.Sprintf("Intervals on weekday %d must be sorted by start time.", r.Weekday),
			)
		}
		if prev.Overlaps(iv) {
			return httperr.InvalidAvailability(
				"overlapping_intervals",
				fmt.Sprintf("Intervals %s-%s and %s-%s on weekday %d overlap.",
					FormatClock(prev.Start), FormatClock(prev.End),
					FormatClock(iv.Start), FormatClock(iv.End), r.Weekday),
			)
		}
	}
	return nil
}

// ValidateWeek validates every rule and rejects duplicate weekdays.
func ValidateWeek(rules []Rule) error {
	seen := make(map[time.Weekday]bool, len(rules))
	for _, r := range rules {
		if err := ValidateRule(r); err != nil {
			return err
		}
		if seen[r.Weekday] {
			return httperr.InvalidAvailability(
				"duplicate_weekday",
				fmt.Sprintf("Weekday %d appears more than once.", r.Weekday),
			)
		}
		seen[r.Weekday] = true
	}
	return nil
}
