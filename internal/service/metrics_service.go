package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the catalog API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	snapshotSize    prometheus.Gauge
	snapshotLoaded  prometheus.Gauge
	refreshTotal    *prometheus.CounterVec
	sourceDuration  *prometheus.HistogramVec
	inquiryTotal    *prometheus.CounterVec
	sessionActions  *prometheus.CounterVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers the Prometheus collectors on a private registry.
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
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	snapshotSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_records",
		Help: "Number of photographer records in the loaded snapshot",
	})

	snapshotLoaded := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_loaded_timestamp_seconds",
		Help: "Unix time the current snapshot was loaded",
	})

	refreshTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Catalog snapshot refreshes by outcome",
	}, []string{"outcome"})

	sourceDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_source_fetch_seconds",
		Help:    "Duration of record source fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"source", "outcome"})

	inquiryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiries_total",
		Help: "Booking inquiries by status transition",
	}, []string{"status"})

	sessionActions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "browse_session_actions_total",
		Help: "Browse session actions dispatched by type",
	}, []string{"type"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		snapshotSize, snapshotLoaded, refreshTotal, sourceDuration,
		inquiryTotal, sessionActions, goroutines,
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheHitRatio:   cacheHitRatio,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		snapshotSize:    snapshotSize,
		snapshotLoaded:  snapshotLoaded,
		refreshTotal:    refreshTotal,
		sourceDuration:  sourceDuration,
		inquiryTotal:    inquiryTotal,
		sessionActions:  sessionActions,
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

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// SetSnapshot records the size and load time of a freshly installed snapshot.
func (m *MetricsService) SetSnapshot(records int, loadedAt time.Time) {
	if m == nil {
		return
	}
	m.snapshotSize.Set(float64(records))
	m.snapshotLoaded.Set(float64(loadedAt.Unix()))
}

// RecordRefresh counts a snapshot refresh attempt; outcome is one of
// "success", "error" or "cache".
func (m *MetricsService) RecordRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(outcome).Inc()
}

// ObserveSourceFetch times a call to the record source.
func (m *MetricsService) ObserveSourceFetch(source string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.sourceDuration.WithLabelValues(source, outcome).Observe(duration.Seconds())
}

// RecordInquiry counts an inquiry entering status.
func (m *MetricsService) RecordInquiry(status string) {
	if m == nil {
		return
	}
	m.inquiryTotal.WithLabelValues(status).Inc()
}

// RecordSessionAction counts a dispatched browse action.
func (m *MetricsService) RecordSessionAction(actionType string) {
	if m == nil {
		return
	}
	m.sessionActions.WithLabelValues(actionType).Inc()
}
