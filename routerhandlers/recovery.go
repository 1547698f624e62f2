package routerhandlers

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vitalvas/trellis/router"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// Logger receives one error record per recovered panic, carrying the
	// panic value and the goroutine stack. Defaults to slog.Default().
	Logger *slog.Logger

	// OnPanic is an optional callback invoked with the request and the
	// recovered value, after logging.
	OnPanic func(r *http.Request, value any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers and responds 500 Internal Server Error.
// http.ErrAbortHandler is re-raised untouched, since the server uses that
// panic to abort the connection.
func RecoveryMiddleware(cfg RecoveryConfig) router.MiddlewareFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				value := recover()
				if value == nil {
					return
				}

				if value == http.ErrAbortHandler {
					panic(value)
				}

				logger.Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"value", value,
					"stack", string(debug.Stack()),
				)

				if cfg.OnPanic != nil {
					cfg.OnPanic(r, value)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
