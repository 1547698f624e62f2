package routerhandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vitalvas/trellis/router"
)

// AccessLogConfig configures the Access Log middleware behaviour.
type AccessLogConfig struct {
	// Logger receives one record per request. Defaults to slog.Default().
	Logger *slog.Logger

	// ExcludePaths lists exact request paths that are never logged, such
	// as health or metrics endpoints.
	ExcludePaths []string

	// SlowThreshold marks requests at or above this duration with a slow
	// attribute and raises their level to Warn. Zero disables the check.
	SlowThreshold time.Duration
}

// AccessLogMiddleware returns a middleware that writes one structured log
// record per request after the handler completes: method, path, status,
// duration, response size, the matched route pattern when the bundled
// router handled the request, and the request ID when RequestIDMiddleware
// ran earlier in the chain.
//
// Responses with status 500 and above log at Error, 400 and above or slow
// requests at Warn, everything else at Info.
func AccessLogMiddleware(cfg AccessLogConfig) router.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var exclude map[string]bool
	if len(cfg.ExcludePaths) > 0 {
		exclude = make(map[string]bool, len(cfg.ExcludePaths))
		for _, path := range cfg.ExcludePaths {
			exclude[path] = true
		}
	}

	slowThreshold := cfg.SlowThreshold

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exclude[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			status := rec.statusCode()
			slow := slowThreshold > 0 && duration >= slowThreshold

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", duration.Milliseconds(),
				"bytes", rec.size,
			}

			if route := router.CurrentRoute(r); route != nil {
				fields = append(fields, "route", route.Path())
			}

			if id := RequestIDFromContext(r.Context()); id != "" {
				fields = append(fields, "request_id", id)
			}

			if slow {
				fields = append(fields, "slow", true)
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("access", fields...)
			case status >= http.StatusBadRequest || slow:
				logger.Warn("access", fields...)
			default:
				logger.Info("access", fields...)
			}
		})
	}
}
