package service

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceObserveAPIRequest(t *testing.T) {
	m := NewMetricsService()
	m.ObserveAPIRequest(http.MethodGet, "/sheep", http.StatusOK, 20*time.Millisecond)
	m.ObserveAPIRequest(http.MethodDelete, "/mating-pairs/:id", http.StatusInternalServerError, 40*time.Millisecond)
	m.ObserveAPIRequest(http.MethodGet, "/health", 0, 0)

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.RequestsTotal)
	assert.Equal(t, uint64(2), snap.RequestFailures)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodDelete, "/mating-pairs/:id", "500")))

	m.ObserveFormSubmit("mating_pair", "success")
	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), "flock_api_requests_total")
	assert.Contains(t, buf.String(), `flock_form_submissions_total{form="mating_pair",outcome="success"} 1`)
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.ObserveExport("sheep", "csv")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "flock_exports_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveAPIRequest(http.MethodGet, "/sheep", 200, time.Millisecond)
	m.ObserveExport("sheep", "csv")
	assert.Zero(t, m.Snapshot().RequestsTotal)
	assert.NoError(t, m.WriteText(&bytes.Buffer{}))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
