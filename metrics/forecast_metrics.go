package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ForecastMetricsCollector struct {
	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
	CacheRequests   *prometheus.CounterVec
	CacheHitRatio   *prometheus.GaugeVec
	ProviderCalls   *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
}

var (
	globalCollector *ForecastMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *ForecastMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &ForecastMetricsCollector{
			CacheHits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_hits_total",
					Help: "The total number of forecast cache hits",
				},
				[]string{"cache_type"},
			),
			CacheMisses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_misses_total",
					Help: "The total number of forecast cache misses",
				},
				[]string{"cache_type"},
			),
			CacheRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_requests_total",
					Help: "The total number of forecast cache requests",
				},
				[]string{"cache_type"},
			),
			CacheHitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "forecast_cache_hit_ratio",
					Help: "Forecast cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
			ProviderCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_provider_calls_total",
					Help: "Calls to the external forecast and geocoding providers",
				},
				[]string{"provider", "outcome"},
			),
			ProviderLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "forecast_provider_duration_seconds",
					Help:    "Provider call duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
		}
	})
	return globalCollector
}

// CacheMetrics tracks hit/miss counts for one cache backend
type CacheMetrics struct {
	cacheType string
	hits      int64
	misses    int64
	total     int64
	collector *ForecastMetricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.CacheHits.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.CacheMisses.WithLabelValues(m.cacheType).Inc()
	m.collector.CacheRequests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.CacheHitRatio.WithLabelValues(m.cacheType).Set(ratio)
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"cache_type": m.cacheType,
		"hits":       m.hits,
		"misses":     m.misses,
		"total":      m.total,
		"hit_ratio":  hitRatio,
	}
}

// ProviderMetrics tracks call outcomes and latency for one external provider
type ProviderMetrics struct {
	provider  string
	collector *ForecastMetricsCollector
}

func NewProviderMetrics(provider string) *ProviderMetrics {
	return &ProviderMetrics{
		provider:  provider,
		collector: getCollector(),
	}
}

func (m *ProviderMetrics) RecordCall(outcome string) {
	m.collector.ProviderCalls.WithLabelValues(m.provider, outcome).Inc()
}

func (m *ProviderMetrics) RecordLatency(seconds float64) {
	m.collector.ProviderLatency.WithLabelValues(m.provider).Observe(seconds)
}
