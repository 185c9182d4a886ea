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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Cache and Sync Metrics
var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: HelpTextCacheHits,
		},
		[]string{LabelKey},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheMisses,
			Help: HelpTextCacheMisses,
		},
		[]string{LabelKey},
	)

	CacheStaleServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheStaleServed,
			Help: HelpTextCacheStaleServed,
		},
		[]string{LabelKey},
	)

	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheRefreshes,
			Help: HelpTextCacheRefreshes,
		},
		[]string{LabelKey},
	)

	CacheRefreshErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheRefreshErrors,
			Help: HelpTextCacheRefreshErrors,
		},
		[]string{LabelKey},
	)

	CacheCoalescedGets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheCoalescedGets,
			Help: HelpTextCacheCoalescedGets,
		},
		[]string{LabelKey},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheInvalidations,
			Help: HelpTextCacheInvalidations,
		},
		[]string{LabelKey},
	)

	ChallengesJoined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengesJoined,
			Help: HelpTextChallengesJoined,
		},
	)

	ChallengesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengesDone,
			Help: HelpTextChallengesDone,
		},
	)
)
