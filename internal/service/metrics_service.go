package service

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/noah-isme/flock-console/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation of the client and
// provides lightweight snapshots for the CLI.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	formSubmits     *prometheus.CounterVec

	requestCount         uint64
	requestFailures      uint64
	requestDurationTotal uint64
}

// NewMetricsService registers client Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flock_api_request_duration_seconds",
		Help:    "Duration of API requests issued by the client in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_api_requests_total",
		Help: "Total number of API requests issued by the client",
	}, []string{"method", "route", "status"})

	exportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_exports_total",
		Help: "Exported list artifacts by entity and format",
	}, []string{"entity", "format"})

	formSubmits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flock_form_submissions_total",
		Help: "Form submissions by form and outcome",
	}, []string{"form", "outcome"})

	registry.MustRegister(requestDuration, requestTotal, exportsTotal, formSubmits)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		exportsTotal:    exportsTotal,
		formSubmits:     formSubmits,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveAPIRequest records one outbound request. Status 0 marks a transport failure.
func (m *MetricsService) ObserveAPIRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, route, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, route, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= 400 {
		atomic.AddUint64(&m.requestFailures, 1)
	}
}

// ObserveExport counts a rendered export artifact.
func (m *MetricsService) ObserveExport(entity, format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(entity, format).Inc()
}

// ObserveFormSubmit counts a form submission outcome.
func (m *MetricsService) ObserveFormSubmit(form, outcome string) {
	if m == nil {
		return
	}
	m.formSubmits.WithLabelValues(form, outcome).Inc()
}

// WriteText dumps every collected metric in the Prometheus text format.
func (m *MetricsService) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

// Snapshot returns aggregated request counters.
func (m *MetricsService) Snapshot() models.ClientMetrics {
	if m == nil {
		return models.ClientMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	failures := atomic.LoadUint64(&m.requestFailures)
	duration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgMs float64
	if requests > 0 {
		avgMs = float64(duration) / float64(requests) / float64(time.Millisecond)
	}

	return models.ClientMetrics{
		RequestsTotal:            requests,
		RequestFailures:          failures,
		AverageRequestDurationMs: avgMs,
		GeneratedAt:              time.Now().UTC(),
	}
}
