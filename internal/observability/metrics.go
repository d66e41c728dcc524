package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "filmorate_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedSubscribers is the gauge of live feed websocket connections.
	FeedSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "filmorate_feed_subscribers",
		Help: "Number of active live feed WebSocket connections",
	})

	// FeedEventsPublished counts feed events by type and outcome.
	FeedEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filmorate_feed_events_published_total",
		Help: "Total feed events published to Redis",
	}, []string{"event_type", "result"})

	// FeedBackpressureDrops counts live feed messages dropped because a client was slow.
	FeedBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filmorate_feed_backpressure_drops_total",
		Help: "Total number of live feed messages dropped due to backpressure",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
