package timezone

import "time"

// DefaultTimezone is assigned to providers that register without one.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to UTC for empty or unknown names.
func Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalClock converts an instant into the provider-local date (YYYY-MM-DD) and
// minutes since midnight.
func LocalClock(now time.Time, tz string) (string, int) {
	local := now.In(Location(tz))
	return local.Format("2006-01-02"), local.Hour()*60 + local.Minute()
}
