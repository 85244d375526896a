package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes recorded by GenerationsTotal.
const (
	outcomeClean         = "clean"
	outcomeCeiling       = "ceiling"
	outcomeRewriteFailed = "rewrite_failed"
	outcomeInvalid       = "invalid"
	outcomeFailed        = "failed"
	outcomeCancelled     = "cancelled"
)

var (
	// GenerationsTotal counts generation runs by outcome.
	// Labels: outcome (clean, ceiling, rewrite_failed, invalid, failed, cancelled)
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brief",
			Subsystem: "engine",
			Name:      "generations_total",
			Help:      "Total number of generation runs by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationDuration tracks end-to-end run latency.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "brief",
			Subsystem: "engine",
			Name:      "generation_duration_seconds",
			Help:      "Duration of complete generation runs in seconds",
			Buckets:   []float64{1, 2, 5, 10, 20, 40, 80, 160, 320},
		},
	)

	// StepDuration tracks per-step latency.
	// Labels: step (draft, audit, rewrite)
	StepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brief",
			Subsystem: "engine",
			Name:      "step_duration_seconds",
			Help:      "Duration of generation steps in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"step"},
	)

	// RewriteAttempts records the number of successful rewrites per run.
	RewriteAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "brief",
			Subsystem: "engine",
			Name:      "rewrite_attempts",
			Help:      "Number of successful rewrites per completed run",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// ViolationsTotal counts violations found by category.
	ViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brief",
			Subsystem: "engine",
			Name:      "violations_total",
			Help:      "Total number of governance violations found by category",
		},
		[]string{"category"},
	)
)
