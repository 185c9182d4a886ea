package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Cache and sync metric names
const (
	MetricNameCacheHits          = "cache_hits_total"
	MetricNameCacheMisses        = "cache_misses_total"
	MetricNameCacheStaleServed   = "cache_stale_served_total"
	MetricNameCacheRefreshes     = "cache_refreshes_total"
	MetricNameCacheRefreshErrors = "cache_refresh_errors_total"
	MetricNameCacheCoalescedGets = "cache_coalesced_gets_total"
	MetricNameCacheInvalidations = "cache_invalidations_total"
	MetricNameChallengesJoined   = "challenges_joined_total"
	MetricNameChallengesDone     = "challenges_completed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Cache and sync metric help text
const (
	HelpTextCacheHits          = "Total number of cache reads answered from a fresh entry"
	HelpTextCacheMisses        = "Total number of cache reads that required a fetch"
	HelpTextCacheStaleServed   = "Total number of cache reads answered with stale data"
	HelpTextCacheRefreshes     = "Total number of collection refreshes performed"
	HelpTextCacheRefreshErrors = "Total number of failed collection refreshes"
	HelpTextCacheCoalescedGets = "Total number of reads that attached to an in-flight fetch"
	HelpTextCacheInvalidations = "Total number of explicit cache invalidations"
	HelpTextChallengesJoined   = "Total number of successful challenge joins"
	HelpTextChallengesDone     = "Total number of successful challenge completions"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelKey    = "key"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
