package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CallsTotal counts completed chat calls.
	// Labels: provider, result (success, error)
	CallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brief",
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Total number of language model chat calls",
		},
		[]string{"provider", "result"},
	)

	// CallDuration tracks chat call latency including retries.
	CallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brief",
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Duration of language model chat calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)
)

func observeCall(provider string, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CallsTotal.WithLabelValues(provider, result).Inc()
	CallDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
