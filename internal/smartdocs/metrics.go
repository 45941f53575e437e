package smartdocs

import "github.com/prometheus/client_golang/prometheus"

var (
	renderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "render",
			Name:      "requests_total",
			Help:      "Method renders by render cache outcome",
		},
		[]string{"cache"},
	)

	importTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "smartdocs",
			Subsystem: "import",
			Name:      "documents_total",
			Help:      "Imported documents by format and outcome",
		},
		[]string{"format", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(renderTotal, importTotal)
}
