package adapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalvas/trellis/routetree"
)

// Chi registers builder routes into a chi router. Path fragments must
// compose into chi's pattern syntax; they are passed through untouched.
// Path variables reach handlers through chi.URLParam.
type Chi struct {
	router chi.Router
}

var _ routetree.Registrar = (*Chi)(nil)

// NewChi wraps an existing chi router. Pass chi.NewRouter() for a fresh
// one.
func NewChi(router chi.Router) *Chi {
	return &Chi{router: router}
}

// Register implements routetree.Registrar. Middleware rides chi's native
// per-route chain.
func (a *Chi) Register(method, path string, handler http.Handler, middleware ...routetree.Middleware) {
	if len(middleware) > 0 {
		a.router.With(middleware...).Method(method, path, handler)
		return
	}

	a.router.Method(method, path, handler)
}

// ServeHTTP dispatches to the wrapped router.
func (a *Chi) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
