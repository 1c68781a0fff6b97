package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the plugin service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Element loading metrics
	ElementsLoadedTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pluginserve_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pluginserve_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ElementsLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pluginserve_elements_loaded_total",
				Help: "Total number of plugin elements successfully loaded",
			},
			[]string{"category"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ElementsLoadedTotal,
	)

	return m
}

// RegisterCacheStats exposes the directory cache counters as gauges. The
// snapshot function is polled at scrape time.
func (m *Metrics) RegisterCacheStats(snapshot func() (hits, misses, evictions int64, size int)) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_directory_cache_hits_total",
			Help: "Directory cache hits since startup",
		}, func() float64 { h, _, _, _ := snapshot(); return float64(h) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_directory_cache_misses_total",
			Help: "Directory cache misses since startup",
		}, func() float64 { _, mi, _, _ := snapshot(); return float64(mi) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_directory_cache_evictions_total",
			Help: "Directory cache evictions since startup",
		}, func() float64 { _, _, e, _ := snapshot(); return float64(e) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_directory_cache_entries",
			Help: "Current number of directory cache entries",
		}, func() float64 { _, _, _, s := snapshot(); return float64(s) }),
	)
}

// RegisterScanStats exposes marketplace scan counters as gauges, polled at
// scrape time like the cache stats.
func (m *Metrics) RegisterScanStats(snapshot func() (scans int64, seconds float64)) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_marketplace_scans_total",
			Help: "Marketplace scans since startup",
		}, func() float64 { s, _ := snapshot(); return float64(s) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pluginserve_marketplace_scan_duration_seconds_total",
			Help: "Cumulative time spent scanning marketplaces",
		}, func() float64 { _, d := snapshot(); return d }),
	)
}

// Handler returns the scrape endpoint handler for the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations per route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
