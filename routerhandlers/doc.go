// Package routerhandlers provides HTTP middleware for the router and for
// builder chains.
//
// Every middleware is built from a Config struct with zero-value defaults
// and returns a router.MiddlewareFunc, which is the same type the
// routetree builder accepts, so entries slot into Group and verb
// declarations directly:
//
//	b := routetree.New()
//	b.Group("/api/v1", routerhandlers.RequestIDMiddleware(routerhandlers.RequestIDConfig{})).
//		Get("/users", listUsers)
//
// # CORS Middleware
//
// CORSMiddleware implements the CORS protocol per the Fetch Standard. It
// validates the Origin header (RFC 6454), answers preflight OPTIONS
// requests, discovers allowed methods from the router, and intercepts
// preflights that would otherwise end as 405.
//
//	mw, err := routerhandlers.CORSMiddleware(r, routerhandlers.CORSConfig{
//	    AllowedOrigins:   []string{"https://example.com"},
//	    AllowCredentials: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
//
// # Access Log Middleware
//
// AccessLogMiddleware writes one structured log/slog record per request
// after the handler completes, carrying the method, path, status,
// duration, response size, the matched route pattern, and the request ID
// when RequestIDMiddleware ran earlier in the chain.
//
//	r.Use(routerhandlers.AccessLogMiddleware(routerhandlers.AccessLogConfig{
//	    Logger:       slog.New(slog.NewJSONHandler(os.Stdout, nil)),
//	    ExcludePaths: []string{"/healthz", "/metrics"},
//	}))
//
// # Metrics Middleware
//
// NewMetrics builds a Prometheus request counter and latency histogram
// labeled by method, matched route pattern and status code, plus a
// handler serving the exposition format.
//
//	metrics, err := routerhandlers.NewMetrics(routerhandlers.MetricsConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(metrics.Middleware())
//	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
package routerhandlers
