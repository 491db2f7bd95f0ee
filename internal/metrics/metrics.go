// Package metrics exposes Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Gacha Metrics
var (
	DrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDrawsTotal,
			Help: HelpTextDrawsTotal,
		},
		[]string{LabelTier},
	)

	PityTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggers,
			Help: HelpTextPityTriggers,
		},
		[]string{LabelTrigger},
	)

	PullRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePullRequests,
			Help: HelpTextPullRequests,
		},
		[]string{LabelCount, LabelResult},
	)

	DiamondsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDiamondsSpent,
			Help: HelpTextDiamondsSpent,
		},
	)

	DiamondsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiamondsEarned,
			Help: HelpTextDiamondsEarned,
		},
		[]string{LabelSource},
	)

	ProfileCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProfileCache,
			Help: HelpTextProfileCache,
		},
		[]string{LabelResult},
	)

	ConfigReloadChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigReloads,
			Help: HelpTextConfigReloads,
		},
		[]string{LabelResult},
	)
)
