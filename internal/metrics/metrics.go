package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "booking_admissions_total",
			Help:      "Booking admission attempts by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "appointment_transitions_total",
			Help:      "Appointment status changes by target status.",
		},
		[]string{"status"},
	)

	slotQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "slot_queries_total",
			Help:      "Slot listings served, split by audience.",
		},
		[]string{"audience"},
	)
)

// Register adds the collectors to reg. Registering twice on the same registry is a no-op.
func Register(reg prometheus.Registerer) {
	for _, c := range []prometheus.Collector{admissions, transitions, slotQueries} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				panic(err)
			}
		}
	}
}

func IncAdmission(source, outcome string) {
	admissions.WithLabelValues(source, outcome).Inc()
}

func IncTransition(status string) {
	transitions.WithLabelValues(status).Inc()
}

func IncSlotQuery(audience string) {
	slotQueries.WithLabelValues(audience).Inc()
}
