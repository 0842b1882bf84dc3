package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec
	authAttemptsTotal *prometheus.CounterVec
	listCacheTotal    *prometheus.CounterVec
	storeUp           prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imtti_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "imtti_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imtti_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		authAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imtti_auth_attempts_total",
			Help: "Login attempts by principal kind and outcome.",
		}, []string{"principal", "outcome"})

		listCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imtti_list_cache_total",
			Help: "List cache lookups by entity and result.",
		}, []string{"entity", "result"})

		storeUp = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "imtti_store_up",
			Help: "Whether the relational store was reachable at startup.",
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, authAttemptsTotal, listCacheTotal, storeUp)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// AuthAttempts exposes the login attempt counter.
func AuthAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return authAttemptsTotal
}

// ListCache exposes the list cache lookup counter.
func ListCache() *prometheus.CounterVec {
	RegisterMetrics()
	return listCacheTotal
}

// StoreUp exposes the store availability gauge.
func StoreUp() prometheus.Gauge {
	RegisterMetrics()
	return storeUp
}
