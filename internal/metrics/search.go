package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and answer Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guide",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "lang", "status"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guide",
			Name:      "search_results",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "guide",
			Name:      "search_duration_seconds",
			Help:      "Ranking duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"mode"},
	)

	SearchFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "guide",
			Name:      "search_fallbacks_total",
			Help:      "Semantic searches answered by the lexical ranker",
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guide",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "guide",
			Name:      "answers_total",
			Help:      "Follow-up answers by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and answer metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchFallbacksTotal)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(AnswersTotal)
	searchMetricsRegistered = true
}
