package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qbet",
			Name:      "searches_total",
			Help:      "Total number of ranking pipeline runs",
		},
		[]string{"outcome"}, // "ok" / "empty" / "failed"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "qbet",
			Name:      "search_duration_seconds",
			Help:      "Ranking pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "qbet",
			Name:      "search_results",
			Help:      "Number of candidates returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	IntentFeaturesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qbet",
			Name:      "intent_features_total",
			Help:      "Queries in which an intent feature was detected",
		},
		[]string{"feature"}, // "skills" / "location" / "budget" / "immediate" / "limit"
	)

	CatalogRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qbet",
			Name:      "catalog_refresh_total",
			Help:      "Catalog snapshot refreshes",
		},
		[]string{"status"},
	)

	CatalogCandidates = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "qbet",
			Name:      "catalog_candidates",
			Help:      "Number of candidates in the current catalog snapshot",
		},
	)
)

// Entity recognizer Prometheus metrics.
var (
	RecognizerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qbet",
			Name:      "recognizer_requests_total",
			Help:      "Total number of entity recognition requests",
		},
		[]string{"provider", "status"},
	)

	RecognizerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qbet",
			Name:      "recognizer_request_duration_seconds",
			Help:      "Entity recognition request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	EntityCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qbet",
			Name:      "entity_cache_total",
			Help:      "Entity recognition cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers pipeline, catalog and recognizer metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(IntentFeaturesTotal)
	prometheus.MustRegister(CatalogRefreshTotal)
	prometheus.MustRegister(CatalogCandidates)
	prometheus.MustRegister(RecognizerRequestsTotal)
	prometheus.MustRegister(RecognizerRequestDuration)
	prometheus.MustRegister(EntityCacheTotal)
	searchMetricsRegistered = true
}
