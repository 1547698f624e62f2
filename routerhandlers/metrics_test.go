package routerhandlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/trellis/router"
)

func TestNewMetrics(t *testing.T) {
	t.Run("defaults to a private registry", func(t *testing.T) {
		m, err := NewMetrics(MetricsConfig{})

		require.NoError(t, err)
		require.NotNil(t, m)
	})

	t.Run("rejects duplicate collectors on a shared registry", func(t *testing.T) {
		registry := prometheus.NewRegistry()

		_, err := NewMetrics(MetricsConfig{Registry: registry})
		require.NoError(t, err)

		_, err = NewMetrics(MetricsConfig{Registry: registry})
		assert.ErrorContains(t, err, "metrics: register collector")
	})
}

func TestMetricsMiddleware(t *testing.T) {
	t.Run("counts requests by method, route and code", func(t *testing.T) {
		m, err := NewMetrics(MetricsConfig{})
		require.NoError(t, err)

		r := router.New()
		r.HandleFunc(http.MethodGet, "/users/{id:int}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Use(m.Middleware())

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/1", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/2", nil))

		exposition := scrape(t, m)
		assert.Contains(t, exposition, `http_requests_total{code="200",method="GET",route="/users/{id:int}"} 2`)
		assert.Contains(t, exposition, `http_request_duration_seconds_count{method="GET",route="/users/{id:int}"} 2`)
	})

	t.Run("uses the raw path without a matched route", func(t *testing.T) {
		m, err := NewMetrics(MetricsConfig{})
		require.NoError(t, err)

		handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/raw", nil))

		assert.Contains(t, scrape(t, m), `http_requests_total{code="202",method="POST",route="/raw"} 1`)
	})

	t.Run("namespace prefixes the metric names", func(t *testing.T) {
		m, err := NewMetrics(MetricsConfig{Namespace: "trellis"})
		require.NoError(t, err)

		handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Contains(t, scrape(t, m), "trellis_requests_total")
	})
}

// scrape fetches the exposition body from the metrics handler.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	m, err := NewMetrics(MetricsConfig{})
	if err != nil {
		b.Fatal(err)
	}

	r := router.New()
	r.HandleFunc(http.MethodGet, "/test", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Use(m.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	b.ResetTimer()
	for b.Loop() {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}
