package adapter

import (
	"net/http"

	"github.com/vitalvas/trellis/routetree"
)

// ServeMux registers builder routes into a net/http ServeMux using
// method-prefixed patterns. Path fragments must compose into ServeMux
// pattern syntax; they are passed through untouched. Path variables
// reach handlers through Request.PathValue. The mux panics at
// registration on malformed patterns, as http.ServeMux always does.
type ServeMux struct {
	mux *http.ServeMux
}

var _ routetree.Registrar = (*ServeMux)(nil)

// NewServeMux wraps an existing mux. Pass http.NewServeMux() for a
// fresh one.
func NewServeMux(mux *http.ServeMux) *ServeMux {
	return &ServeMux{mux: mux}
}

// Register implements routetree.Registrar. The chain is composed before
// registration because ServeMux has no middleware of its own.
func (a *ServeMux) Register(method, path string, handler http.Handler, middleware ...routetree.Middleware) {
	a.mux.Handle(method+" "+path, compose(handler, middleware))
}

// ServeHTTP dispatches to the wrapped mux.
func (a *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
