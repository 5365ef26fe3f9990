package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the Prometheus instruments drakenbench exposes. It is the
// trimmed, single-purpose descendant of the teacher's api.Metrics: no
// transaction/batch/gRPC surface, just what a synchronous kernel benchmark
// can honestly report.
type metrics struct {
	RowsProcessed prometheus.Counter
	OpDuration    prometheus.Histogram
}

func newMetrics(namespace string) *metrics {
	return &metrics{
		RowsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_processed_total",
			Help:      "Total number of rows processed across all runs",
		}),
		OpDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "op_duration_seconds",
			Help:      "Duration of a single operator kernel invocation",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// metricsServer runs an HTTP server exposing /metrics, the same shape as
// the teacher's api.MetricsServer.
type metricsServer struct {
	server *http.Server
}

func newMetricsServer(addr string) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &metricsServer{server: &http.Server{Addr: addr, Handler: mux}}
}

func (s *metricsServer) StartAsync() {
	go func() {
		_ = s.server.ListenAndServe()
	}()
}
