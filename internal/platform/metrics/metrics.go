package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poimap_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"method", "status"})
	RouteRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poimap_route_requests_total",
		Help: "Routing provider requests by outcome (ok, no_route, transport)",
	}, []string{"provider", "outcome"})
	RouteDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "poimap_route_duration_ms",
		Help:    "Routing provider call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
	}, []string{"provider"})
	RouteCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poimap_route_cache_hits_total",
		Help: "Route cache hits",
	})
	RouteCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "poimap_route_cache_misses_total",
		Help: "Route cache misses",
	})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "poimap_active_sessions",
		Help: "Map sessions currently held in memory",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestDurationMs)
	prometheus.MustRegister(RouteRequestsTotal)
	prometheus.MustRegister(RouteDurationMs)
	prometheus.MustRegister(RouteCacheHitsTotal)
	prometheus.MustRegister(RouteCacheMissesTotal)
	prometheus.MustRegister(ActiveSessions)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
