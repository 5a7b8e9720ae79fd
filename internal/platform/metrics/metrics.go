package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors exposed on /metrics. Each instance owns its
// registry so tests can build routers without clashing registrations.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter        *prometheus.CounterVec
	RequestDuration       *prometheus.HistogramVec
	RequestInProgress     *prometheus.GaugeVec
	RateLimiterRejections *prometheus.CounterVec
	ProgressUpdates       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dsa_arena_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"status", "method", "route"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dsa_arena_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status", "method", "route"},
		),
		RequestInProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dsa_arena_http_requests_in_progress",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),
		RateLimiterRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dsa_arena_rate_limiter_rejections_total",
				Help: "Requests rejected by the auth rate limiter",
			},
			[]string{"route"},
		),
		ProgressUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dsa_arena_progress_updates_total",
				Help: "Progress upserts by resulting status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestCounter,
		m.RequestDuration,
		m.RequestInProgress,
		m.RateLimiterRejections,
		m.ProgressUpdates,
	)
	return m
}
