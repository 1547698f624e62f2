package manifest

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHandle(t *testing.T) {
	t.Run("JSON document at /meta/routes.json", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API", Version: "1.0.0"})

		w := serveRequest(r, http.MethodGet, "/meta/routes.json")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var doc Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "Test API", doc.Title)
		assert.Equal(t, "GET", doc.Routes[0].Method)
		assert.Equal(t, "/items", doc.Routes[0].Path)
	})

	t.Run("YAML document at /meta/routes.yaml", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API", Version: "1.0.0"})

		w := serveRequest(r, http.MethodGet, "/meta/routes.yaml")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/x-yaml", w.Header().Get("Content-Type"))

		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "Test API", doc["title"])
	})

	t.Run("endpoints list themselves", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"})

		w := serveRequest(r, http.MethodGet, "/meta/routes.json")

		var doc Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))

		paths := make([]string, 0, len(doc.Routes))
		for _, entry := range doc.Routes {
			paths = append(paths, entry.Path)
		}
		assert.Contains(t, paths, "/meta/routes.json")
		assert.Contains(t, paths, "/meta/routes.yaml")
	})

	t.Run("custom JSON filename", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"}, HandleConfig{JSONFilename: "table.json"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/meta/table.json").Code)
		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/meta/routes.json").Code)
	})

	t.Run("absolute filename ignores base path", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"}, HandleConfig{JSONFilename: "/routes.json"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/routes.json").Code)
	})

	t.Run("disable YAML endpoint", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"}, HandleConfig{YAMLFilename: "-"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/meta/routes.json").Code)
		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/meta/routes.yaml").Code)
	})

	t.Run("disable JSON endpoint", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"}, HandleConfig{JSONFilename: "-"})

		assert.Equal(t, http.StatusNotFound, serveRequest(r, http.MethodGet, "/meta/routes.json").Code)
		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/meta/routes.yaml").Code)
	})

	t.Run("empty base path serves from root", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "", Info{Title: "Test API"})

		assert.Equal(t, http.StatusOK, serveRequest(r, http.MethodGet, "/routes.json").Code)
	})

	t.Run("document is cached after the first request", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"})

		first := serveRequest(r, http.MethodGet, "/meta/routes.json")
		require.Equal(t, http.StatusOK, first.Code)

		r.HandleFunc(http.MethodGet, "/late", okHandler)

		second := serveRequest(r, http.MethodGet, "/meta/routes.json")
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("routes registered before the first request are included", func(t *testing.T) {
		r := setupTestRouter()
		Handle(r, "/meta", Info{Title: "Test API"})

		r.HandleFunc(http.MethodDelete, "/items/{id:uuid}", okHandler)

		w := serveRequest(r, http.MethodGet, "/meta/routes.json")

		var doc Document
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))

		var found bool
		for _, entry := range doc.Routes {
			if entry.Method == http.MethodDelete {
				found = true
			}
		}
		assert.True(t, found)
	})
}
