// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SwipesRecorded counts swipe decisions by outcome ("like" or "pass").
	SwipesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindling_swipes_total",
		Help: "Swipe decisions recorded",
	}, []string{"decision"})

	// MatchesCreated counts confirmed mutual-like matches.
	MatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindling_matches_total",
		Help: "Mutual-like matches created",
	})

	// MatchRepairs counts asymmetric match records re-written by the
	// reconciliation sweep.
	MatchRepairs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindling_match_repairs_total",
		Help: "One-sided match records repaired during listing",
	})

	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindling_redis_errors_total",
		Help: "Redis command failures",
	}, []string{"command"})
)
