package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register(prometheus.NewRegistry())

	before := testutil.ToFloat64(admissions.WithLabelValues("public", "conflict"))
	IncAdmission("public", "conflict")
	IncAdmission("public", "conflict")
	assert.Equal(t, before+2, testutil.ToFloat64(admissions.WithLabelValues("public", "conflict")))

	before = testutil.ToFloat64(transitions.WithLabelValues("confirmed"))
	IncTransition("confirmed")
	assert.Equal(t, before+1, testutil.ToFloat64(transitions.WithLabelValues("confirmed")))
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	Register(reg)

	IncSlotQuery("public")
	n, err := testutil.GatherAndCount(reg, "scheduler_slot_queries_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
