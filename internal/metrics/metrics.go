// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route template, method and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qna_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route template and method.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qna_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"route", "method"})

	// Votes counts applied vote toggles by target kind and the user's
	// resulting vote ("up", "down" or "none").
	Votes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qna_votes_total",
		Help: "Vote toggles by target kind and resulting user vote",
	}, []string{"kind", "result"})

	// ListingCache counts question listing cache lookups by outcome.
	ListingCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qna_listing_cache_total",
		Help: "Question listing cache lookups by outcome (hit, miss, error)",
	}, []string{"outcome"})
)
