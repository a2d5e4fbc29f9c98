package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type importMetrics struct {
	rowsTotal *prometheus.CounterVec
	runsTotal *prometheus.CounterVec

	duration *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *importMetrics {
	return &importMetrics{
		rowsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faculty",
			Name:      "import_rows_total",
			Help:      "Total number of spreadsheet rows processed by outcome.",
		}, []string{"kind", "outcome"}),
		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faculty",
			Name:      "import_runs_total",
			Help:      "Total number of import runs by final status.",
		}, []string{"kind", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "faculty",
			Name:      "import_duration_seconds",
			Help:      "Wall time of import runs from decode to the last row.",
			Buckets: []float64{
				0.01, 0.05,
				0.1, 0.25, 0.5,
				1, 2.5, 5, 10, 30,
			},
		}, []string{"kind"}),
	}
})

func getMetrics() *importMetrics {
	return metricsSingleton()
}
