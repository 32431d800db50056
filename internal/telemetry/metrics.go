package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// AssessmentsScored counts scoring runs by resulting overall band
	AssessmentsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "assessments_scored_total",
			Help:      "Total number of assessments scored, by overall band",
		},
		[]string{"band"},
	)

	// CodesEncoded counts share codes produced
	CodesEncoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "codes_encoded_total",
			Help:      "Total number of share codes encoded",
		},
		[]string{"source"},
	)

	// CodesDecoded counts share codes accepted
	CodesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "codes_decoded_total",
			Help:      "Total number of share codes decoded successfully",
		},
		[]string{"source"},
	)

	// DecodeFailures counts rejected share codes
	DecodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "decode_failures_total",
			Help:      "Total number of rejected share codes",
		},
		[]string{"source", "reason"},
	)

	// ForcedCritical counts assessments pinned to Critical by re-identification
	ForcedCritical = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "forced_critical_total",
			Help:      "Total number of assessments eligible for forced Critical",
		},
	)

	// LoweredFromCritical counts overall overrides that lowered a forced Critical
	LoweredFromCritical = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prr",
			Name:      "lowered_from_critical_total",
			Help:      "Total number of overall overrides below a forced Critical",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// It is idempotent.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(AssessmentsScored)
		prometheus.DefaultRegisterer.Register(CodesEncoded)
		prometheus.DefaultRegisterer.Register(CodesDecoded)
		prometheus.DefaultRegisterer.Register(DecodeFailures)
		prometheus.DefaultRegisterer.Register(ForcedCritical)
		prometheus.DefaultRegisterer.Register(LoweredFromCritical)
	})
}
