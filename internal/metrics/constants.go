package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal   = "minehub_http_requests_total"
	MetricNameHTTPRequestDuration = "minehub_http_request_duration_seconds"
	MetricNameFetchesTotal        = "minehub_backend_fetches_total"
	MetricNameFetchErrors         = "minehub_backend_fetch_errors_total"
	MetricNameFetchDuration       = "minehub_backend_fetch_duration_seconds"
	MetricNameFetchesInFlight     = "minehub_backend_fetches_in_flight"
	MetricNameCoalescedTriggers   = "minehub_poller_coalesced_triggers_total"
	MetricNameSettlementTriggers  = "minehub_poller_settlement_triggers_total"
	MetricNameViewRecomputes      = "minehub_view_recomputes_total"
	MetricNameStorageFallbackHits = "minehub_storage_fallback_operations_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal   = "Total HTTP requests served, by method, path and status"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
	HelpTextFetchesTotal        = "Backend fetches attempted per data source"
	HelpTextFetchErrors         = "Backend fetch failures per data source and error class"
	HelpTextFetchDuration       = "Backend fetch latency in seconds per data source"
	HelpTextFetchesInFlight     = "Backend fetches currently in flight"
	HelpTextCoalescedTriggers   = "Poll triggers dropped because a fetch was already in flight"
	HelpTextSettlementTriggers  = "Priority refreshes fired on hourly settlement boundaries"
	HelpTextViewRecomputes      = "Aggregated view recomputations"
	HelpTextStorageFallback     = "Shim operations served by the in-memory fallback"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelSource = "source"
	LabelClass  = "class"
)

// HTTPLatencyBuckets are the histogram buckets for HTTP latency in seconds.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// FetchLatencyBuckets are the histogram buckets for backend fetch latency.
var FetchLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
