package manifest

import (
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/vitalvas/trellis/router"
)

// HandleConfig controls the endpoints registered by Handle.
type HandleConfig struct {
	// JSONFilename is the filename of the JSON document, resolved
	// against the base path. An absolute value is used as-is. Set to
	// "-" to disable the JSON endpoint. Defaults to "routes.json".
	JSONFilename string

	// YAMLFilename is the filename of the YAML document, resolved
	// against the base path. An absolute value is used as-is. Set to
	// "-" to disable the YAML endpoint. Defaults to "routes.yaml".
	YAMLFilename string
}

func (c HandleConfig) jsonFilename() string {
	if c.JSONFilename == "" {
		return "routes.json"
	}

	return c.JSONFilename
}

func (c HandleConfig) yamlFilename() string {
	if c.YAMLFilename == "" {
		return "routes.yaml"
	}

	return c.YAMLFilename
}

// Handle registers GET endpoints on the router that serve its own
// routing table as a manifest document. The document is snapshotted on
// the first request to each endpoint and cached afterwards, so routes
// registered later do not appear.
func Handle(r *router.Router, basePath string, info Info, config ...HandleConfig) {
	cfg := HandleConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if basePath == "" {
		basePath = "/"
	}

	registerJSON(r, basePath, info, cfg)
	registerYAML(r, basePath, info, cfg)
}

func registerJSON(r *router.Router, basePath string, info Info, cfg HandleConfig) {
	filename := cfg.jsonFilename()
	if filename == "-" {
		return
	}

	var (
		once     sync.Once
		payload  []byte
		buildErr error
	)

	r.HandleFunc(http.MethodGet, resolvePath(basePath, filename), func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			payload, buildErr = FromRouter(r, info).JSON()
		})

		if buildErr != nil {
			http.Error(w, buildErr.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	})
}

func registerYAML(r *router.Router, basePath string, info Info, cfg HandleConfig) {
	filename := cfg.yamlFilename()
	if filename == "-" {
		return
	}

	var (
		once     sync.Once
		payload  []byte
		buildErr error
	)

	r.HandleFunc(http.MethodGet, resolvePath(basePath, filename), func(w http.ResponseWriter, _ *http.Request) {
		once.Do(func() {
			payload, buildErr = FromRouter(r, info).YAML()
		})

		if buildErr != nil {
			http.Error(w, buildErr.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		_, _ = w.Write(payload)
	})
}

func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}

	return path.Join(basePath, filename)
}
