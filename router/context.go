package router

import (
	"context"
	"errors"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store both route and variables.
var ctxKey = routeContextKey{}

// routeContext holds the matched route and extracted path variables.
type routeContext struct {
	route *Route
	vars  map[string]string
}

// Params returns the path variables extracted for the current request,
// if any.
func Params(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// Param returns the value of a single path variable by name and a boolean
// indicating whether the variable exists.
func Param(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return "", false
}

// CurrentRoute returns the matched route for the current request, if any.
// This only works inside the handler of the matched route because the
// route is carried in the request context.
func CurrentRoute(r *http.Request) *Route {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.route
	}
	return nil
}

// SetParams sets the path variables for the given request, returning the
// modified request. This is intended for testing handlers in isolation.
func SetParams(r *http.Request, vars map[string]string) *http.Request {
	var route *Route
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		route = rc.route
	}
	return setRouteContext(r, route, vars)
}

// setRouteContext stores the matched route and variables in the request
// context with a single WithContext call. For routes without variables the
// payload is cached on the Route, so dispatching a static route allocates
// only on the first request.
func setRouteContext(r *http.Request, route *Route, vars map[string]string) *http.Request {
	var rc *routeContext
	if route != nil && vars == nil {
		route.staticCtxOnce.Do(func() {
			route.staticCtx = &routeContext{route: route}
		})
		rc = route.staticCtx
	} else {
		rc = &routeContext{route: route, vars: vars}
	}
	ctx := context.WithValue(r.Context(), ctxKey, rc)
	return r.WithContext(ctx)
}

// ErrMethodMismatch is returned when the method in the request does not
// match any route registered for the path. Triggers 405 Method Not Allowed
// per RFC 7231 Section 6.5.5.
var ErrMethodMismatch = errors.New("method is not allowed")

// ErrNotFound is returned when no route matches at all. Triggers 404 Not
// Found per RFC 7231 Section 6.5.4.
var ErrNotFound = errors.New("no matching route was found")
