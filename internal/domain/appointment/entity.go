package appointment

import (
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
)

// Reservation is the window an existing appointment holds on its date.
type Reservation struct {
	AppointmentID uint
	Window        availability.Interval
}

// FindConflict returns the first reservation whose window overlaps candidate.
// The reservation belonging to exclude is skipped so an appointment never conflicts with itself.
func FindConflict(candidate availability.Interval, existing []Reservation, exclude uint) (Reservation, bool) {
	for _, r := range existing {
		if exclude != 0 && r.AppointmentID == exclude {
			continue
		}
		if candidate.Overlaps(r.Window) {
			return r, true
		}
	}
	return Reservation{}, false
}
