package routerhandlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vitalvas/trellis/router"
)

// MetricsConfig configures the Metrics middleware behaviour.
type MetricsConfig struct {
	// Namespace prefixes the metric names. Defaults to "http".
	Namespace string

	// Registry receives the collectors and backs Metrics.Handler.
	// Defaults to a fresh private registry.
	Registry *prometheus.Registry

	// Buckets are the duration histogram buckets in seconds. Defaults to
	// prometheus.DefBuckets.
	Buckets []float64
}

// Metrics records request count and latency per method, route and status
// code, and serves them in Prometheus exposition format. Requests handled
// by the bundled router are labeled with the matched route pattern, which
// keeps label cardinality bounded; unmatched requests fall back to the
// raw path.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on the configured
// registry. It returns an error when a collector with the same name is
// already registered there.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "http"
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served, by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency in seconds, by method and route.",
			Buckets:   buckets,
		}, []string{"method", "route"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.duration} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}

	return m, nil
}

// Middleware returns the middleware observing every request.
func (m *Metrics) Middleware() router.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			routeLabel := r.URL.Path
			if route := router.CurrentRoute(r); route != nil {
				routeLabel = route.Path()
			}

			m.requests.WithLabelValues(r.Method, routeLabel, strconv.Itoa(rec.statusCode())).Inc()
			m.duration.WithLabelValues(r.Method, routeLabel).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the registry in Prometheus exposition format, for
// mounting at a metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
