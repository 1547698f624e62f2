package router

import (
	"net/http"
	"sync"
)

// Route is one registered method and path pattern together with its
// composed handler chain.
type Route struct {
	method          string
	path            string
	pattern         *pattern
	handler         http.Handler
	middlewareCount int
	err             error

	// staticCtx caches the request context payload for routes without
	// path variables, filled on first dispatch.
	staticCtx     *routeContext
	staticCtxOnce sync.Once
}

// Method returns the HTTP method the route was registered under.
func (r *Route) Method() string {
	return r.method
}

// Path returns the path pattern exactly as registered.
func (r *Route) Path() string {
	return r.path
}

// Vars returns the names of the path variables declared in the pattern,
// in the order they appear.
func (r *Route) Vars() []string {
	if r.pattern == nil {
		return nil
	}
	return r.pattern.names
}

// MiddlewareCount returns how many middleware were composed around the
// handler when the route was registered.
func (r *Route) MiddlewareCount() int {
	return r.middlewareCount
}

// Err returns the pattern compilation error, if any. A route with a
// non-nil error is kept in the table but never matches.
func (r *Route) Err() error {
	return r.err
}

// match reports whether the route accepts the method and path, returning
// extracted path variables on success.
func (r *Route) match(method, path string) (map[string]string, bool) {
	if r.err != nil || r.method != method {
		return nil, false
	}
	return r.pattern.match(path)
}
