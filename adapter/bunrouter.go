package adapter

import (
	"net/http"

	"github.com/uptrace/bunrouter"

	"github.com/vitalvas/trellis/routetree"
)

// Bun registers builder routes into a bunrouter instance. Path fragments
// must compose into bunrouter's :param and *rest syntax; they are passed
// through untouched. Path variables reach handlers through
// bunrouter.ParamsFromContext.
type Bun struct {
	router *bunrouter.Router
}

var _ routetree.Registrar = (*Bun)(nil)

// NewBun wraps an existing bunrouter instance. Pass bunrouter.New() for
// a fresh one.
func NewBun(router *bunrouter.Router) *Bun {
	return &Bun{router: router}
}

// Register implements routetree.Registrar. The chain is composed before
// registration because bunrouter middleware wraps bunrouter handlers,
// not http.Handler.
func (a *Bun) Register(method, path string, handler http.Handler, middleware ...routetree.Middleware) {
	a.router.Handle(method, path, bunrouter.HTTPHandler(compose(handler, middleware)))
}

// ServeHTTP dispatches to the wrapped router.
func (a *Bun) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
