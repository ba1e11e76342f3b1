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
)

// Poller / fetch metrics
var (
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFetchesTotal,
			Help: HelpTextFetchesTotal,
		},
		[]string{LabelSource},
	)

	FetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFetchErrors,
			Help: HelpTextFetchErrors,
		},
		[]string{LabelSource, LabelClass},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameFetchDuration,
			Help:    HelpTextFetchDuration,
			Buckets: FetchLatencyBuckets,
		},
		[]string{LabelSource},
	)

	FetchesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameFetchesInFlight,
			Help: HelpTextFetchesInFlight,
		},
	)

	CoalescedTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoalescedTriggers,
			Help: HelpTextCoalescedTriggers,
		},
		[]string{LabelSource},
	)

	SettlementTriggers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSettlementTriggers,
			Help: HelpTextSettlementTriggers,
		},
	)
)

// View / storage metrics
var (
	ViewRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameViewRecomputes,
			Help: HelpTextViewRecomputes,
		},
	)

	StorageFallbackHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStorageFallbackHits,
			Help: HelpTextStorageFallback,
		},
	)
)
