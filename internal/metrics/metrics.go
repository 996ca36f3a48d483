package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tracks API requests by operation and outcome.
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of catalog API requests (by operation and status).",
		},
		[]string{"operation", "status"},
	)

	// Measures duration of store calls.
	StoreCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_store_call_duration_seconds",
			Help:    "Duration of record store calls in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"operation"},
	)

	// Last observed total number of product records, refreshed periodically.
	ProductsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products_total",
			Help: "Total number of product records in the store.",
		},
	)

	NATSPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_publish_errors_total",
			Help: "Number of NATS publish failures",
		},
		[]string{"subject"},
	)
)

func IncRequest(operation, status string) {
	CatalogRequestsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveStoreCall records the elapsed time of a store call.
func ObserveStoreCall(operation string, start time.Time) {
	StoreCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// StartServer exposes /metrics on its own port.
func StartServer(addr string) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(addr, mux)
	}()
}
