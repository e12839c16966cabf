package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageOperationLatency records backend call latency by operation and backend.
	StorageOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "netgro_storage_operation_latency_seconds",
		Help:    "Storage backend operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "backend"})

	// StorageReadCorruption counts documents replaced by their fallback on read.
	StorageReadCorruption = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netgro_storage_read_corruption_total",
		Help: "Total number of stored documents that could not be decoded",
	}, []string{"key"})

	// StorageWriteFailures counts failed persists by backend.
	StorageWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netgro_storage_write_failures_total",
		Help: "Total number of failed storage writes",
	}, []string{"backend"})

	// AuthAttempts counts register/login outcomes.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netgro_auth_attempts_total",
		Help: "Total number of authentication attempts by operation and result",
	}, []string{"operation", "result"})

	// PostMutations counts content store mutations by kind.
	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netgro_post_mutations_total",
		Help: "Total number of post mutations by kind",
	}, []string{"kind"})
)

// TrackStorage returns a function that records latency for a backend call when called (e.g. defer).
func TrackStorage(operation, backend string) func() {
	start := time.Now()
	return func() {
		StorageOperationLatency.WithLabelValues(operation, backend).Observe(time.Since(start).Seconds())
	}
}

// RecordAuth increments the auth attempts counter; a nil err counts as success.
func RecordAuth(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	AuthAttempts.WithLabelValues(operation, result).Inc()
}
