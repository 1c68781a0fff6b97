package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_RecordsRequests(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/plugins", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, `pluginserve_http_requests_total{method="GET",path="/api/v1/plugins",status="418"} 1`)
	assert.Contains(t, body, "pluginserve_http_request_duration_seconds")
}

func TestRegisterCacheStats(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RegisterCacheStats(func() (int64, int64, int64, int) {
		return 7, 3, 1, 4
	})

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, "pluginserve_directory_cache_hits_total 7")
	assert.Contains(t, body, "pluginserve_directory_cache_misses_total 3")
	assert.Contains(t, body, "pluginserve_directory_cache_evictions_total 1")
	assert.Contains(t, body, "pluginserve_directory_cache_entries 4")
}

func TestRegisterScanStats(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RegisterScanStats(func() (int64, float64) {
		return 12, 0.25
	})

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, "pluginserve_marketplace_scans_total 12")
	assert.Contains(t, body, "pluginserve_marketplace_scan_duration_seconds_total 0.25")
}

func TestElementsLoadedCounter(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ElementsLoadedTotal.WithLabelValues("skills").Inc()
	m.ElementsLoadedTotal.WithLabelValues("skills").Inc()
	m.ElementsLoadedTotal.WithLabelValues("agents").Inc()

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))

	body := scrape.Body.String()
	assert.Contains(t, body, `pluginserve_elements_loaded_total{category="skills"} 2`)
	assert.Contains(t, body, `pluginserve_elements_loaded_total{category="agents"} 1`)
}
