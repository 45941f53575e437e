package hooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "hooks",
			Name:      "dispatch_total",
			Help:      "Total number of hook dispatches",
		},
		[]string{"event", "outcome"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smartdocs",
			Subsystem: "hooks",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent running all observers of an event",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(dispatchTotal, dispatchDuration)
}

func observeDispatch(name string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	dispatchTotal.WithLabelValues(name, outcome).Inc()
	dispatchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
