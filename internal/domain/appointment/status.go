package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

var allStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.Validation("invalid_status", fmt.Sprintf("Unknown status %q.", s))
}

// Active reports whether the status still reserves its time window.
func (s Status) Active() bool {
	return s != StatusCancelled
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

func allowedFrom(s Status) []Status {
	switch s {
	case StatusPending:
		return []Status{StatusConfirmed, StatusCancelled, StatusRescheduled}
	case StatusConfirmed:
		return []Status{StatusCompleted, StatusCancelled, StatusRescheduled}
	case StatusRescheduled:
		return []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled}
	case StatusCompleted, StatusCancelled:
		return nil
	}
	return nil
}

func CanTransition(from, to Status) bool {
	for _, s := range allowedFrom(from) {
		if s == to {
			return true
		}
	}
	return false
}

// Transition validates a status change.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return httperr.Validation(
			"invalid_transition",
			fmt.Sprintf("Appointment cannot move from %s to %s.", from, to),
		)
	}
	return nil
}

// InitialStatus is the status of every freshly admitted appointment.
func InitialStatus() Status {
	return StatusPending
}
