package router

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler, wrapping it with additional behavior such as
// logging or authentication. It is a type alias so middleware values flow
// between packages that declare the same shape, without conversion.
type MiddlewareFunc = func(http.Handler) http.Handler

// Router dispatches requests to handlers registered per method and path
// pattern. Routes are matched in registration order.
//
// It implements the http.Handler interface, so it can be registered to
// serve requests:
//
//	r := router.New()
//	r.HandleFunc(http.MethodGet, "/users/{id:int}", userHandler)
//	http.ListenAndServe(":8080", r)
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	// Corresponds to 404 Not Found per RFC 7231 Section 6.5.4.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path
	// but not the method. If nil, a default 405 handler is used.
	// Per RFC 7231 Section 6.5.5, the Allow header is always set before
	// this handler is invoked.
	MethodNotAllowedHandler http.Handler

	routes      []*Route
	middlewares []MiddlewareFunc

	// handlerCache caches the Use-wrapped handler per route so the wrap
	// happens once, not on every request.
	handlerCache sync.Map // map[*Route]http.Handler

	skipClean bool
}

// New returns a new router instance.
func New() *Router {
	return &Router{}
}

// Handle records handler for method at the given path pattern and returns
// the new Route. The middleware is composed around the handler right away,
// first entry outermost, so the first middleware sees the request first.
// Pattern errors are recorded on the route, which then never matches; see
// Route.Err.
func (r *Router) Handle(method, path string, handler http.Handler, middleware ...MiddlewareFunc) *Route {
	route := &Route{
		method:          strings.ToUpper(method),
		path:            path,
		middlewareCount: len(middleware),
	}
	if handler != nil {
		route.handler = applyChain(handler, middleware)
	}
	route.pattern, route.err = compilePattern(path)
	r.routes = append(r.routes, route)
	return route
}

// HandleFunc records an ordinary function as the handler for method at the
// given path pattern.
func (r *Router) HandleFunc(method, path string, f func(http.ResponseWriter, *http.Request)) *Route {
	return r.Handle(method, path, http.HandlerFunc(f))
}

// Register records a route the same way Handle does, without returning it.
// This is the registration contract consumed by the routetree builder, and
// any other code that only needs the capability to add routes.
func (r *Router) Register(method, path string, handler http.Handler, middleware ...MiddlewareFunc) {
	r.Handle(method, path, handler, middleware...)
}

// Use appends a MiddlewareFunc to the chain. Middleware is applied to
// matched handlers only, outside any middleware composed at registration
// time. Call Use before the router starts serving.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)
}

// Routes returns every registered route in registration order.
func (r *Router) Routes() []*Route {
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// SkipClean disables request path normalization. When enabled, paths are
// matched exactly as sent by the client, dot segments included.
func (r *Router) SkipClean(value bool) *Router {
	r.skipClean = value
	return r
}

// ServeHTTP dispatches the handler registered in the matched route.
// Implements http.Handler per RFC 7230 Section 3.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Normalize the request path per RFC 3986 Section 5.2.4
	// (removing dot segments) unless SkipClean is enabled.
	if !r.skipClean {
		if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
			u := *req.URL
			u.Path = cleaned
			u.RawPath = ""
			req = req.Clone(req.Context())
			req.URL = &u
		}
	}

	route, vars := r.match(req.Method, req.URL.Path)
	if route == nil {
		if allowed := r.allowedMethods(req.URL.Path); len(allowed) > 0 {
			// RFC 7231 Section 6.5.5: the origin server MUST generate an
			// Allow header field in a 405 response.
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			handler := r.MethodNotAllowedHandler
			if handler == nil {
				handler = defaultMethodNotAllowedHandler
			}
			handler.ServeHTTP(w, req)
			return
		}

		handler := r.NotFoundHandler
		if handler == nil {
			handler = defaultNotFoundHandler
		}
		handler.ServeHTTP(w, req)
		return
	}

	handler := route.handler
	if handler == nil {
		handler = defaultNotFoundHandler
	}
	if len(r.middlewares) > 0 {
		if cached, ok := r.handlerCache.Load(route); ok {
			handler = cached.(http.Handler)
		} else {
			wrapped := applyChain(handler, r.middlewares)
			r.handlerCache.Store(route, wrapped)
			handler = wrapped
		}
	}

	req = setRouteContext(req, route, vars)
	handler.ServeHTTP(w, req)
}

// Lookup finds the route that would serve method and path, along with the
// path variables it would extract. It returns ErrMethodMismatch when the
// path is registered under other methods only, and ErrNotFound when
// nothing matches.
func (r *Router) Lookup(method, path string) (*Route, map[string]string, error) {
	if !r.skipClean {
		path = cleanPath(path)
	}
	if route, vars := r.match(strings.ToUpper(method), path); route != nil {
		return route, vars, nil
	}
	if len(r.allowedMethods(path)) > 0 {
		return nil, nil, ErrMethodMismatch
	}
	return nil, nil, ErrNotFound
}

// match returns the first route accepting the method and path, in
// registration order.
func (r *Router) match(method, path string) (*Route, map[string]string) {
	for _, route := range r.routes {
		if vars, ok := route.match(method, path); ok {
			return route, vars
		}
	}
	return nil, nil
}

// allowedMethods collects the methods that have a route matching path,
// sorted, for the Allow header of 405 responses.
func (r *Router) allowedMethods(path string) []string {
	var seen map[string]bool
	for _, route := range r.routes {
		if route.err != nil || seen[route.method] {
			continue
		}
		if _, ok := route.pattern.match(path); ok {
			if seen == nil {
				seen = make(map[string]bool)
			}
			seen[route.method] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}

	allowed := make([]string, 0, len(seen))
	for method := range seen {
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	return allowed
}

// applyChain wraps handler in the given middleware so the first entry in
// the list is the first to see the request.
func applyChain(handler http.Handler, middleware []MiddlewareFunc) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}
