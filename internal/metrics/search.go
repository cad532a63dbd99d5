package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentsearch",
			Name:      "search_requests_total",
			Help:      "Total number of candidate search pipeline invocations",
		},
		[]string{"entry", "status"}, // entry: "recommend" / "search" / "listing"
	)

	SearchStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "search_stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"stage"}, // "vectorize" / "knn" / "reduce" / "enrich"
	)

	SearchHitsFetched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "talentsearch",
			Name:      "search_hits_fetched",
			Help:      "Raw hits fetched per KNN pass before owner deduplication",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchStageDuration)
	prometheus.MustRegister(SearchHitsFetched)
	searchMetricsRegistered = true
}
