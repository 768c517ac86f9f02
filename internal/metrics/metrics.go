// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatRequests counts chat requests by result.
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_insights_chat_requests_total",
		Help: "Chat requests processed, labeled by result.",
	}, []string{"result"})

	// FallbackResponses counts responses served by the deterministic local
	// responder instead of a live backend.
	FallbackResponses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "health_insights_fallback_responses_total",
		Help: "Responses produced by the offline fallback responder.",
	})

	// SafetyViolations counts post-hoc safety validation hits by category.
	SafetyViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_insights_safety_violations_total",
		Help: "Disallowed phrases detected in generated responses.",
	}, []string{"category"})
)
