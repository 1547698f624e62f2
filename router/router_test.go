package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("serves 404 with no routes", func(t *testing.T) {
		r := New()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anything", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterHandle(t *testing.T) {
	noop := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	t.Run("uppercases the method", func(t *testing.T) {
		r := New()
		route := r.Handle("get", "/x", noop)

		assert.Equal(t, http.MethodGet, route.Method())
		assert.Equal(t, "/x", route.Path())
	})

	t.Run("exposes declared variables", func(t *testing.T) {
		r := New()
		route := r.Handle(http.MethodGet, "/users/{id}/posts/{slug}", noop)

		assert.Equal(t, []string{"id", "slug"}, route.Vars())
	})

	t.Run("records pattern errors on the route", func(t *testing.T) {
		r := New()
		route := r.Handle(http.MethodGet, "/users/{}", noop)
		require.Error(t, route.Err())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("register is handle without the result", func(t *testing.T) {
		r := New()
		r.Register(http.MethodGet, "/x", noop)

		require.Len(t, r.Routes(), 1)
		assert.Equal(t, "/x", r.Routes()[0].Path())
	})
}

func TestRouterServeHTTP(t *testing.T) {
	t.Run("dispatches to matched handler", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/hello", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "world")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "world", w.Body.String())
	})

	t.Run("matches in registration order", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/users/{id}", func(w http.ResponseWriter, req *http.Request) {
			id, _ := Param(req, "id")
			fmt.Fprint(w, "var:"+id)
		})
		r.HandleFunc(http.MethodGet, "/users/me", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "static")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		assert.Equal(t, "var:me", w.Body.String())
	})

	t.Run("extracts path variables", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/users/{id}", func(w http.ResponseWriter, req *http.Request) {
			fmt.Fprint(w, Params(req)["id"])
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("returns 404 for unmatched path", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/hello", func(_ http.ResponseWriter, _ *http.Request) {})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notfound", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("uses custom NotFoundHandler", func(t *testing.T) {
		r := New()
		r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "custom 404")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notfound", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "custom 404", w.Body.String())
	})

	t.Run("returns 405 with Allow for known path and wrong method", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodPost, "/users", func(_ http.ResponseWriter, _ *http.Request) {})
		r.HandleFunc(http.MethodGet, "/users", func(_ http.ResponseWriter, _ *http.Request) {})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/users", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET, POST", w.Header().Get("Allow"))
	})

	t.Run("uses custom MethodNotAllowedHandler", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/users", func(_ http.ResponseWriter, _ *http.Request) {})
		r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusMethodNotAllowed)
			fmt.Fprint(w, "nope")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "nope", w.Body.String())
		assert.Equal(t, "GET", w.Header().Get("Allow"))
	})

	t.Run("cleans dot segments before matching", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/users", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "ok")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/../users", nil))
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("skips path cleaning when configured", func(t *testing.T) {
		r := New().SkipClean(true)
		r.HandleFunc(http.MethodGet, "/users", func(_ http.ResponseWriter, _ *http.Request) {})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/../users", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("nil handler responds 404", func(t *testing.T) {
		r := New()
		r.Handle(http.MethodGet, "/ghost", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ghost", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterMiddleware(t *testing.T) {
	marker := func(log *[]string, name string) MiddlewareFunc {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				*log = append(*log, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	t.Run("per-route middleware runs first entry first", func(t *testing.T) {
		var log []string
		r := New()
		r.Handle(http.MethodGet, "/x", http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			log = append(log, "handler")
		}), marker(&log, "one"), marker(&log, "two"))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, []string{"one", "two", "handler"}, log)
	})

	t.Run("use middleware wraps outside the route chain", func(t *testing.T) {
		var log []string
		r := New()
		r.Use(marker(&log, "global"))
		r.Handle(http.MethodGet, "/x", http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			log = append(log, "handler")
		}), marker(&log, "route"))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, []string{"global", "route", "handler"}, log)
	})

	t.Run("use middleware does not run for unmatched requests", func(t *testing.T) {
		var log []string
		r := New()
		r.Use(marker(&log, "global"))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Empty(t, log)
	})

	t.Run("wrapped handlers are cached per route", func(t *testing.T) {
		var wraps int
		r := New()
		r.Use(func(next http.Handler) http.Handler {
			wraps++
			return next
		})
		r.HandleFunc(http.MethodGet, "/x", func(_ http.ResponseWriter, _ *http.Request) {})

		for range 3 {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		}
		assert.Equal(t, 1, wraps)
	})
}

func TestRouterLookup(t *testing.T) {
	noop := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

	t.Run("finds route and variables", func(t *testing.T) {
		r := New()
		want := r.Handle(http.MethodGet, "/users/{id:int}", noop)

		route, vars, err := r.Lookup(http.MethodGet, "/users/42")
		require.NoError(t, err)
		assert.Same(t, want, route)
		assert.Equal(t, "42", vars["id"])
	})

	t.Run("reports method mismatch", func(t *testing.T) {
		r := New()
		r.Handle(http.MethodGet, "/users", noop)

		_, _, err := r.Lookup(http.MethodPost, "/users")
		assert.ErrorIs(t, err, ErrMethodMismatch)
	})

	t.Run("reports not found", func(t *testing.T) {
		r := New()
		r.Handle(http.MethodGet, "/users", noop)

		_, _, err := r.Lookup(http.MethodGet, "/missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("cleans the path before matching", func(t *testing.T) {
		r := New()
		want := r.Handle(http.MethodGet, "/users", noop)

		route, _, err := r.Lookup(http.MethodGet, "/admin/../users")
		require.NoError(t, err)
		assert.Same(t, want, route)
	})
}

func TestRouterRoutes(t *testing.T) {
	t.Run("returns routes in registration order", func(t *testing.T) {
		r := New()
		r.HandleFunc(http.MethodGet, "/a", func(_ http.ResponseWriter, _ *http.Request) {})
		r.HandleFunc(http.MethodPost, "/b", func(_ http.ResponseWriter, _ *http.Request) {})

		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "/a", routes[0].Path())
		assert.Equal(t, "/b", routes[1].Path())
	})
}

func BenchmarkRouterServeStatic(b *testing.B) {
	r := New()
	r.HandleFunc(http.MethodGet, "/api/v1/status", func(_ http.ResponseWriter, _ *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	b.ResetTimer()
	for b.Loop() {
		r.ServeHTTP(w, req)
	}
}

func BenchmarkRouterServeParams(b *testing.B) {
	r := New()
	r.HandleFunc(http.MethodGet, "/api/v1/users/{id:int}", func(_ http.ResponseWriter, _ *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil)
	w := httptest.NewRecorder()
	b.ResetTimer()
	for b.Loop() {
		r.ServeHTTP(w, req)
	}
}
