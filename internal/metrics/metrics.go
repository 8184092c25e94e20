package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyricflow_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lyricflow_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyricflow_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Romanization metrics.
var (
	RomanizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyricflow_romanizations_total",
		Help: "Romanizations by method and result",
	}, []string{"method", "result"})

	RomanizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lyricflow_romanization_duration_seconds",
		Help:    "Romanization duration in seconds by method",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method"})
)

// Lyrics lookup metrics.
var (
	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyricflow_provider_calls_total",
		Help: "Lyrics provider calls by provider and result",
	}, []string{"provider", "result"})

	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lyricflow_provider_duration_seconds",
		Help:    "Lyrics provider call duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"provider"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyricflow_cache_hits_total",
		Help: "Lyrics served from the cache",
	})
)

// ProviderTimer records one provider call's latency and outcome.
type ProviderTimer struct {
	provider string
	start    time.Time
}

func NewProviderTimer(provider string) *ProviderTimer {
	return &ProviderTimer{provider: provider, start: time.Now()}
}

func (t *ProviderTimer) Done(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ProviderCallsTotal.WithLabelValues(t.provider, result).Inc()
	ProviderLatency.WithLabelValues(t.provider).Observe(time.Since(t.start).Seconds())
}
