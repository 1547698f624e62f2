// Package router implements a method-aware request router with pattern
// matching, designed as the registration target for the routetree builder
// while remaining fully usable on its own.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics, successor to RFC 7231)
//   - RFC 3986 (URIs)
//
// Routes are matched in registration order, which keeps dispatch
// predictable when patterns overlap: the first route registered wins.
//
// # Registration
//
// Every route binds one HTTP method to one path pattern:
//
//	r := router.New()
//	r.HandleFunc(http.MethodGet, "/articles/{id:int}", articleHandler)
//	r.Handle(http.MethodPost, "/articles", createHandler, authMiddleware)
//	http.ListenAndServe(":8080", r)
//
// Register behaves like Handle without returning the route; it is the
// sink for routetree.Builder chains. Malformed patterns do not fail the
// call: the error is recorded on the route, the route never matches, and
// Route.Err exposes the cause.
//
// # Path Patterns
//
// Patterns are matched segment by segment. Variables are enclosed in
// curly braces, optionally followed by a colon and a macro name or a
// regular expression:
//
//	r.HandleFunc(http.MethodGet, "/users/{id}", handler)
//	r.HandleFunc(http.MethodGet, "/users/{id:uuid}", handler)
//	r.HandleFunc(http.MethodGet, "/posts/{year:[0-9]{4}}", handler)
//	r.HandleFunc(http.MethodGet, "/v{major:int}/status", handler)
//
// Available macros:
//
//	uuid     - RFC 4122 UUID (e.g. 550e8400-e29b-41d4-a716-446655440000)
//	int      - unsigned integer (e.g. 42)
//	float    - decimal number (e.g. 3.14, 42, .5)
//	slug     - URL-safe slug (e.g. my-post-title)
//	alpha    - alphabetic characters (e.g. hello)
//	alphanum - alphanumeric characters (e.g. abc123)
//	date     - ISO date (e.g. 2024-01-15)
//	hex      - hexadecimal characters (e.g. deadbeef)
//
// A trailing {name...} segment captures the remainder of the path,
// slashes included:
//
//	r.HandleFunc(http.MethodGet, "/static/{file...}", fileHandler)
//
// # Path Variables
//
// Extracted variables are stored in the request context and accessible
// via Params or Param:
//
//	func articleHandler(w http.ResponseWriter, r *http.Request) {
//		id, _ := router.Param(r, "id")
//		...
//	}
//
// CurrentRoute returns the matched *Route inside a handler, and SetParams
// injects variables into a request for testing handlers in isolation.
//
// # Not Found and Method Not Allowed
//
// When no pattern matches the request path, the router replies 404 via
// NotFoundHandler. When a pattern matches under a different method, it
// replies 405 via MethodNotAllowedHandler with the Allow header listing
// the registered methods, per RFC 7231 Section 6.5.5. Both handlers can
// be replaced:
//
//	r.NotFoundHandler = http.HandlerFunc(custom404)
//
// # Middleware
//
// Middleware attaches at two levels. Per-route middleware is passed to
// Handle or Register and composed around the handler immediately. Global
// middleware added with Use wraps every matched handler, outside the
// per-route chain:
//
//	r.Use(requestLogging)
//
// Request paths are normalized per RFC 3986 Section 5.2.4 (dot segment
// removal) before matching; SkipClean(true) disables this.
package router
