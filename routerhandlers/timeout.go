package routerhandlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vitalvas/trellis/router"
)

// ErrInvalidTimeout is returned when TimeoutConfig.Duration is not greater
// than zero.
var ErrInvalidTimeout = errors.New("timeout: duration must be greater than zero")

// TimeoutConfig configures the Timeout middleware behaviour.
type TimeoutConfig struct {
	// Duration is the deadline attached to each request context. Must be
	// greater than zero.
	Duration time.Duration
}

// TimeoutMiddleware returns a middleware that attaches a deadline to the
// request context. Handlers that honor the context stop early; when the
// deadline has expired and the handler returned without writing anything,
// the middleware responds 504 Gateway Timeout.
//
// It returns ErrInvalidTimeout if Duration is not greater than zero.
func TimeoutMiddleware(cfg TimeoutConfig) (router.MiddlewareFunc, error) {
	if cfg.Duration <= 0 {
		return nil, ErrInvalidTimeout
	}

	duration := cfg.Duration

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			if ctx.Err() == context.DeadlineExceeded && !rec.written {
				w.WriteHeader(http.StatusGatewayTimeout)
			}
		})
	}, nil
}
