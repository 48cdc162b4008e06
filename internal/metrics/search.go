package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablescout",
			Name:      "searches_total",
			Help:      "Total number of search requests",
		},
		[]string{"context", "outcome"}, // outcome: "ok" / "invalid" / "error"
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablescout",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	StrategyRoundDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tablescout",
			Name:      "strategy_round_duration_seconds",
			Help:      "Duration of one parallel strategy round against the catalog",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	StrategyErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablescout",
			Name:      "strategy_errors_total",
			Help:      "Catalog strategy failures degraded to empty results",
		},
		[]string{"strategy"},
	)

	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablescout",
			Name:      "assistant_requests_total",
			Help:      "Total assistant calls by operation and status",
		},
		[]string{"op", "status"}, // status: "success" / "error" / "fallback"
	)

	AssistantRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tablescout",
			Name:      "assistant_request_duration_seconds",
			Help:      "Assistant request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search pipeline metrics. Must be called
// once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(StrategyRoundDuration)
	prometheus.MustRegister(StrategyErrorsTotal)
	prometheus.MustRegister(AssistantRequestsTotal)
	prometheus.MustRegister(AssistantRequestDuration)
	searchMetricsRegistered = true
}
