// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RPCRequests counts finished RPCs by method and status code.
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accountadate_grpc_requests_total",
		Help: "Total number of gRPC requests by method and code",
	}, []string{"method", "code"})

	// RPCLatency records RPC handling time by method.
	RPCLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "accountadate_grpc_request_duration_seconds",
		Help:    "gRPC request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	// SwipesRecorded counts swipes by polarity.
	SwipesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accountadate_swipes_total",
		Help: "Total number of swipes recorded",
	}, []string{"polarity"})

	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accountadate_matches_created_total",
		Help: "Total number of mutual matches created",
	})

	MatchesEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accountadate_matches_ended_total",
		Help: "Total number of matches ended",
	})

	MessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accountadate_messages_posted_total",
		Help: "Total number of chat messages posted",
	})

	// ChatWatchers is the number of running chat subscriptions.
	ChatWatchers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accountadate_chat_watchers",
		Help: "Number of active chat watch subscriptions",
	})

	// BadgesAwarded counts newly earned badges by id.
	BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accountadate_badges_awarded_total",
		Help: "Total number of badges awarded",
	}, []string{"badge"})

	// CacheLookups counts admirer-count cache lookups by result (hit/miss/error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "accountadate_cache_lookups_total",
		Help: "Admirer count cache lookups by result",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
