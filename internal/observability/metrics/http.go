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

	matchRequestsTotal *prometheus.CounterVec
	matchDuration      *prometheus.HistogramVec
	matchesReturned    *prometheus.HistogramVec
	coursesFiltered    *prometheus.HistogramVec
	noMatchTotal       *prometheus.CounterVec

	extractionsTotal *prometheus.CounterVec
	extractedTags    *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfr",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cfr",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	matchRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfr",
			Subsystem: "match",
			Name:      "requests_total",
			Help:      "Total successful recommendation requests.",
		},
		[]string{"service"},
	)
	matchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "match",
			Name:      "duration_seconds",
			Help:      "Recommendation pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	matchesReturned := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "match",
			Name:      "matches_returned",
			Help:      "Distribution of matches returned per recommendation.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service"},
	)
	coursesFiltered := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "match",
			Name:      "courses_filtered",
			Help:      "Distribution of courses dropped by hard filters per request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"service"},
	)
	noMatchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfr",
			Subsystem: "match",
			Name:      "no_match_total",
			Help:      "Total recommendation requests with an empty result.",
		},
		[]string{"service"},
	)
	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfr",
			Subsystem: "extraction",
			Name:      "requests_total",
			Help:      "Total successful tag extractions by input source.",
		},
		[]string{"service", "source"},
	)
	extractedTags := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "extraction",
			Name:      "tags_extracted",
			Help:      "Distribution of tags extracted per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		matchRequestsTotal,
		matchDuration,
		matchesReturned,
		coursesFiltered,
		noMatchTotal,
		extractionsTotal,
		extractedTags,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		matchRequestsTotal: matchRequestsTotal,
		matchDuration:      matchDuration,
		matchesReturned:    matchesReturned,
		coursesFiltered:    coursesFiltered,
		noMatchTotal:       noMatchTotal,
		extractionsTotal:   extractionsTotal,
		extractedTags:      extractedTags,
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

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/courses/"):
		return "/v1/courses/{course_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordRecommendation(service string, matches, filtered int, duration time.Duration) {
	m.matchRequestsTotal.WithLabelValues(service).Inc()
	m.matchDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.matchesReturned.WithLabelValues(service).Observe(float64(matches))
	m.coursesFiltered.WithLabelValues(service).Observe(float64(filtered))
	if matches == 0 {
		m.noMatchTotal.WithLabelValues(service).Inc()
	}
}

func (m *HTTPServerMetrics) RecordExtraction(service, source string, tags int) {
	if source == "" {
		source = "text"
	}
	m.extractionsTotal.WithLabelValues(service, source).Inc()
	m.extractedTags.WithLabelValues(service, source).Observe(float64(tags))
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
