// Package manifest renders a router's routing table as a JSON or YAML
// document.
//
// A document lists every servable route in registration order, with its
// method, path pattern, path variable names, and middleware count:
//
//	doc := manifest.FromRouter(r, manifest.Info{Title: "My API", Version: "1.0.0"})
//
//	payload, err := doc.JSON()
//
// # Serving Endpoints
//
// Handle registers GET endpoints that serve the router's own table:
//
//	manifest.Handle(r, "/.well-known", manifest.Info{Title: "My API"})
//
// This serves /.well-known/routes.json and /.well-known/routes.yaml.
// Filenames are configurable, and either endpoint can be disabled by
// setting its filename to "-":
//
//	manifest.Handle(r, "/", manifest.Info{Title: "My API"}, manifest.HandleConfig{
//		JSONFilename: "routes.json",
//		YAMLFilename: "-",
//	})
//
// The document is built on the first request to each endpoint and cached
// for the lifetime of the process.
package manifest
