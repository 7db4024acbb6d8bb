// Package metrics provides Prometheus metrics for the savedrive server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savedrive_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "savedrive_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Catalog metrics
	catalogRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "savedrive_catalog_records",
			Help: "Number of records currently in the catalog",
		},
	)

	catalogMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savedrive_catalog_mutations_total",
			Help: "Total catalog mutations by operation",
		},
		[]string{"op"},
	)

	// Upload demo metrics
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savedrive_uploads_total",
			Help: "Total number of uploads to the upload directory",
		},
		[]string{"status"},
	)

	uploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savedrive_upload_bytes_total",
			Help: "Total bytes written to the upload directory",
		},
	)

	// SSE metrics
	sseConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "savedrive_sse_connections_active",
			Help: "Number of active SSE subscribers",
		},
	)

	sseEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "savedrive_sse_events_total",
			Help: "Total SSE events published by type",
		},
		[]string{"type"},
	)

	// Watcher metrics
	watcherScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "savedrive_watcher_scans_total",
			Help: "Total upload directory scans",
		},
	)
)

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCatalogSize sets the catalog record count gauge.
func SetCatalogSize(n int64) {
	catalogRecords.Set(float64(n))
}

// RecordMutation records a catalog mutation by operation name.
func RecordMutation(op string) {
	catalogMutationsTotal.WithLabelValues(op).Inc()
}

// RecordUpload records an upload attempt to the upload directory.
func RecordUpload(bytes int64, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	uploadsTotal.WithLabelValues(status).Inc()
	if ok && bytes > 0 {
		uploadBytesTotal.Add(float64(bytes))
	}
}

// SetSSEConnectionsActive sets the active SSE subscriber gauge.
func SetSSEConnectionsActive(n int64) {
	sseConnectionsActive.Set(float64(n))
}

// RecordSSEEvent records a published SSE event.
func RecordSSEEvent(eventType string) {
	sseEventsTotal.WithLabelValues(eventType).Inc()
}

// RecordWatcherScan records one scan of the upload directory.
func RecordWatcherScan() {
	watcherScansTotal.Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so SSE streaming keeps working
// through the middleware chain.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Middleware records request count and duration for every request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}
