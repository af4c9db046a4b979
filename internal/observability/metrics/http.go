package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	documentsUploadedTotal *prometheus.CounterVec
	taskMutationsTotal     *prometheus.CounterVec
	searchRequestsTotal    *prometheus.CounterVec
	rateLimitedTotal       *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "officemate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "officemate",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	documentsUploadedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "documents",
			Name:      "uploaded_total",
			Help:      "Total uploaded documents by provisional category.",
		},
		[]string{"service", "category"},
	)
	taskMutationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "tasks",
			Name:      "mutations_total",
			Help:      "Total task mutations by operation.",
		},
		[]string{"service", "operation"},
	)
	searchRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "documents",
			Name:      "search_requests_total",
			Help:      "Total document searches split by whether anything matched.",
		},
		[]string{"service", "outcome"},
	)
	rateLimitedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected by rate limiting or backpressure.",
		},
		[]string{"service", "reason"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		documentsUploadedTotal,
		taskMutationsTotal,
		searchRequestsTotal,
		rateLimitedTotal,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		documentsUploadedTotal: documentsUploadedTotal,
		taskMutationsTotal:     taskMutationsTotal,
		searchRequestsTotal:    searchRequestsTotal,
		rateLimitedTotal:       rateLimitedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses resource ids so the path label stays low
// cardinality.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	case strings.HasPrefix(path, "/v1/tasks/"):
		if strings.HasSuffix(path, "/toggle") {
			return "/v1/tasks/{task_id}/toggle"
		}
		return "/v1/tasks/{task_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordDocumentUploaded(service, category string) {
	if category == "" {
		category = "unknown"
	}
	m.documentsUploadedTotal.WithLabelValues(service, category).Inc()
}

func (m *HTTPServerMetrics) RecordTaskMutation(service, operation string) {
	if operation == "" {
		operation = "unknown"
	}
	m.taskMutationsTotal.WithLabelValues(service, operation).Inc()
}

func (m *HTTPServerMetrics) RecordSearch(service string, matches int) {
	outcome := "hit"
	if matches == 0 {
		outcome = "empty"
	}
	m.searchRequestsTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) RecordRejected(service, reason string) {
	m.rateLimitedTotal.WithLabelValues(service, reason).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
