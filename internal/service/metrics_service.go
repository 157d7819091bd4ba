package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	buildDuration   prometheus.Observer
	buildTotal      prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	buildDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_build_duration_seconds",
		Help:    "Duration of schedule snapshot builds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	buildTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_builds_total",
		Help: "Total schedule snapshot builds",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHits, cacheMisses, buildDuration, buildTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		buildDuration:   buildDuration,
		buildTotal:      buildTotal,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCacheOperation records a cache lookup outcome.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// ObserveScheduleBuild records one snapshot build.
func (m *MetricsService) ObserveScheduleBuild(duration time.Duration) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(duration.Seconds())
	m.buildTotal.Inc()
}
