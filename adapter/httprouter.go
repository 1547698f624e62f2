package adapter

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vitalvas/trellis/routetree"
)

// HTTPRouter registers builder routes into a julienschmidt/httprouter
// instance. Path fragments must compose into its :param and *rest
// syntax; they are passed through untouched. Path variables reach
// handlers through httprouter.ParamsFromContext.
type HTTPRouter struct {
	router *httprouter.Router
}

var _ routetree.Registrar = (*HTTPRouter)(nil)

// NewHTTPRouter wraps an existing httprouter instance. Pass
// httprouter.New() for a fresh one.
func NewHTTPRouter(router *httprouter.Router) *HTTPRouter {
	return &HTTPRouter{router: router}
}

// Register implements routetree.Registrar. The chain is composed before
// registration because httprouter has no middleware of its own.
func (a *HTTPRouter) Register(method, path string, handler http.Handler, middleware ...routetree.Middleware) {
	a.router.Handler(method, path, compose(handler, middleware))
}

// ServeHTTP dispatches to the wrapped router.
func (a *HTTPRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
