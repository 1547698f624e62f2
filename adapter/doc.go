// Package adapter bridges routetree builders to third-party routers.
//
// Each adapter implements routetree.Registrar on top of one routing
// backend, so a builder can flatten its route tree into that backend
// instead of the bundled router:
//
//	mux := chi.NewRouter()
//
//	b := routetree.New(routetree.WithRouter(adapter.NewChi(mux)))
//	b.Group("/api/v1").
//		Get("/users/{id}", getUser)
//	b.Build()
//
//	http.ListenAndServe(":8080", mux)
//
// # Path Syntax
//
// Adapters never rewrite paths. Fragments concatenate exactly as
// declared and the result is handed to the backend verbatim, so route
// declarations use whatever placeholder syntax the chosen backend
// understands: {id} for chi and ServeMux, :id for bunrouter and
// httprouter. Handlers read path variables through the backend's own
// accessor.
//
// # Middleware
//
// Where the backend carries per-route http.Handler middleware natively,
// the adapter hands the chain over as-is. Everywhere else the adapter
// composes the chain around the handler before registration, preserving
// order: inherited middleware runs before middleware declared on the
// operation itself.
package adapter
