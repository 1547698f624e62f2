package manifest

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/trellis/router"
)

// Info carries the identifying fields of a manifest document.
type Info struct {
	// Title names the API the routes belong to.
	Title string

	// Version is the application-defined version string.
	Version string
}

// Entry describes one registered route.
type Entry struct {
	// Method is the HTTP method the route answers.
	Method string `json:"method" yaml:"method"`

	// Path is the path pattern exactly as registered.
	Path string `json:"path" yaml:"path"`

	// Params lists the path variable names declared in the pattern, in
	// order of appearance.
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`

	// Middlewares is the number of middleware composed around the
	// handler at registration time.
	Middlewares int `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
}

// Document is a point-in-time inventory of the routes registered on a
// router.
type Document struct {
	Title   string  `json:"title" yaml:"title"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Routes  []Entry `json:"routes" yaml:"routes"`
}

// FromRouter snapshots the router's routing table in registration order.
// Routes whose pattern failed to compile are left out, since they can
// never serve a request.
func FromRouter(r *router.Router, info Info) *Document {
	routes := r.Routes()

	doc := &Document{
		Title:   info.Title,
		Version: info.Version,
		Routes:  make([]Entry, 0, len(routes)),
	}

	for _, route := range routes {
		if route.Err() != nil {
			continue
		}

		doc.Routes = append(doc.Routes, Entry{
			Method:      route.Method(),
			Path:        route.Path(),
			Params:      route.Vars(),
			Middlewares: route.MiddlewareCount(),
		})
	}

	return doc
}

// JSON serializes the document as indented JSON with a stable field
// order.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML serializes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
