package adapter

import (
	"net/http"

	"github.com/vitalvas/trellis/routetree"
)

// compose wraps handler in the given middleware so the first entry sees
// the request first. Backends without a native per-route http.Handler
// chain receive the pre-composed handler.
func compose(handler http.Handler, middleware []routetree.Middleware) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
