package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

// metricsService labels every HTTP series exported at /metrics; the domain
// counters in internal/observability use the kindling_ prefix instead.
const metricsService = "kindling-api"

// NewHTTPMetrics builds the Prometheus collector covering request counts,
// latency, and in-flight requests for all routes.
func NewHTTPMetrics() *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(metricsService)
}

// HTTPMetrics returns the Fiber handler feeding the collector.
func HTTPMetrics(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
