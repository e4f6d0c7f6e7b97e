package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	refitTotal    *prometheus.CounterVec
	refitDuration *prometheus.HistogramVec
	refitInFlight prometheus.Gauge
	queueLag      *prometheus.HistogramVec

	spaceCourses    prometheus.Gauge
	spaceVocabulary prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	refitTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cfr",
			Subsystem: "worker",
			Name:      "space_refit_total",
			Help:      "Total space refits by status.",
		},
		[]string{"service", "status"},
	)
	refitDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "worker",
			Name:      "space_refit_duration_seconds",
			Help:      "Space refit duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	refitInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cfr",
			Subsystem: "worker",
			Name:      "space_refit_in_flight",
			Help:      "Number of in-flight space refits.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cfr",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between a catalog change event and refit start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	spaceCourses := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cfr",
			Subsystem: "space",
			Name:      "courses",
			Help:      "Courses covered by the published fitted space.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	spaceVocabulary := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cfr",
			Subsystem: "space",
			Name:      "vocabulary_size",
			Help:      "Vocabulary size of the published fitted space.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(refitTotal, refitDuration, refitInFlight, queueLag, spaceCourses, spaceVocabulary)

	return &WorkerMetrics{
		registry:        registry,
		refitTotal:      refitTotal,
		refitDuration:   refitDuration,
		refitInFlight:   refitInFlight,
		queueLag:        queueLag,
		spaceCourses:    spaceCourses,
		spaceVocabulary: spaceVocabulary,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRefit() {
	m.refitInFlight.Inc()
}

func (m *WorkerMetrics) FinishRefit(service string, duration time.Duration, err error) {
	m.refitInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.refitTotal.WithLabelValues(service, status).Inc()
	m.refitDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) SetSpaceStats(courses, vocabularySize int) {
	m.spaceCourses.Set(float64(courses))
	m.spaceVocabulary.Set(float64(vocabularySize))
}
