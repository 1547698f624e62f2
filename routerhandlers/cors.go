package routerhandlers

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/vitalvas/trellis/router"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*" and
// AllowCredentials is true. Use AllowOriginFunc for dynamic origin checks
// with credentials.
var ErrWildcardCredentials = errors.New("cors: wildcard origin cannot be combined with AllowCredentials")

// CORSConfig configures the CORS middleware behaviour.
//
// See:
//   - https://fetch.spec.whatwg.org/#http-cors-protocol
//   - https://www.rfc-editor.org/rfc/rfc6454
type CORSConfig struct {
	// AllowedOrigins is a list of exact origin strings, "*" for wildcard,
	// or subdomain wildcard patterns like "https://*.example.com".
	AllowedOrigins []string

	// AllowOriginFunc is an optional dynamic callback invoked when the
	// origin does not match any entry in AllowedOrigins. Return true to
	// allow.
	AllowOriginFunc func(origin string) bool

	// AllowedMethods overrides the set of methods advertised in preflight
	// responses. When empty the middleware discovers the methods
	// registered for the requested path on the router.
	AllowedMethods []string

	// AllowedHeaders lists the headers the client may send in the actual
	// request. When empty the middleware reflects the
	// Access-Control-Request-Headers value from the preflight request.
	// Use "*" to reflect all requested headers.
	AllowedHeaders []string

	// ExposeHeaders lists the headers the browser may expose to client
	// code.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	// Per the Fetch Standard, "*" cannot be used as Allow-Origin when
	// credentials are enabled; the middleware returns
	// ErrWildcardCredentials.
	AllowCredentials bool

	// MaxAge is the duration in seconds a preflight result may be cached.
	// Positive values are sent as-is, negative values emit "0", zero
	// omits the header.
	MaxAge int
}

// wildcardPattern is a subdomain wildcard pattern split at the "*".
type wildcardPattern struct {
	prefix string
	suffix string
}

// originMatcher answers whether an Origin header value is allowed,
// resolved once from the configured origin lists.
type originMatcher struct {
	wildcard  bool
	exact     []string
	patterns  []wildcardPattern
	allowFunc func(origin string) bool
}

func newOriginMatcher(cfg *CORSConfig) (*originMatcher, error) {
	m := &originMatcher{allowFunc: cfg.AllowOriginFunc}

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			m.wildcard = true
			continue
		}

		lower := strings.ToLower(origin)
		if i := strings.IndexByte(lower, '*'); i >= 0 {
			if strings.Contains(lower[i+1:], "*") {
				return nil, fmt.Errorf("cors: origin pattern %q contains multiple wildcards", origin)
			}
			m.patterns = append(m.patterns, wildcardPattern{prefix: lower[:i], suffix: lower[i+1:]})
			continue
		}

		m.exact = append(m.exact, lower)
	}

	return m, nil
}

// allow reports whether the raw Origin header value is allowed. Matching
// against the configured lists is case-insensitive; AllowOriginFunc
// receives the value as sent.
func (m *originMatcher) allow(origin string) bool {
	if m.wildcard {
		return true
	}

	lower := strings.ToLower(origin)
	if slices.Contains(m.exact, lower) {
		return true
	}

	for _, wp := range m.patterns {
		if len(lower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(lower, wp.prefix) && strings.HasSuffix(lower, wp.suffix) {
			return true
		}
	}

	if m.allowFunc != nil {
		return m.allowFunc(origin)
	}

	return false
}

// specific reports whether the matcher restricts origins, which requires
// Vary: Origin even on responses to non-CORS requests (RFC 9110, field
// Vary).
func (m *originMatcher) specific() bool {
	return !m.wildcard && (len(m.exact) > 0 || len(m.patterns) > 0 || m.allowFunc != nil)
}

// CORSMiddleware returns a middleware implementing the CORS protocol per
// the Fetch Standard: it validates the Origin header, answers preflight
// OPTIONS requests, and sets the response headers for actual requests.
//
// The router is used to discover the methods registered for a path when
// AllowedMethods is empty, and to intercept preflight requests that would
// otherwise end as 405 because no OPTIONS route exists. Pass nil when the
// middleware runs in front of a different backend; preflights then answer
// only for paths with a registered OPTIONS handler.
//
// It returns an error when the configuration is invalid, such as wildcard
// origin combined with AllowCredentials.
func CORSMiddleware(r *router.Router, cfg CORSConfig) (router.MiddlewareFunc, error) {
	if slices.Contains(cfg.AllowedOrigins, "*") && cfg.AllowCredentials {
		return nil, ErrWildcardCredentials
	}

	matcher, err := newOriginMatcher(&cfg)
	if err != nil {
		return nil, err
	}

	headersWildcard := slices.Contains(cfg.AllowedHeaders, "*")

	if r != nil {
		interceptPreflight(r, &cfg, matcher, headersWildcard)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			origin := req.Header.Get("Origin")

			if origin == "" {
				if matcher.specific() {
					w.Header().Add("Vary", "Origin")
				}

				next.ServeHTTP(w, req)
				return
			}

			if !matcher.allow(origin) {
				next.ServeHTTP(w, req)
				return
			}

			setOriginHeaders(w, &cfg, matcher, origin)

			if isPreflight(req) {
				writePreflight(w, req, r, &cfg, headersWildcard)
				return
			}

			if len(cfg.ExposeHeaders) > 0 {
				w.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
			}

			next.ServeHTTP(w, req)
		})
	}, nil
}

// isPreflight reports whether req is a CORS preflight request.
func isPreflight(req *http.Request) bool {
	return req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != ""
}

// setOriginHeaders sets Access-Control-Allow-Origin, Vary, and
// Access-Control-Allow-Credentials on the response.
func setOriginHeaders(w http.ResponseWriter, cfg *CORSConfig, m *originMatcher, origin string) {
	if m.wildcard && !cfg.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}

	if cfg.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

// writePreflight answers a preflight request with 204 No Content and the
// negotiated Allow-Methods, Allow-Headers and Max-Age headers.
func writePreflight(w http.ResponseWriter, req *http.Request, r *router.Router, cfg *CORSConfig, headersWildcard bool) {
	methods := cfg.AllowedMethods
	if len(methods) == 0 && r != nil {
		methods = discoverMethods(r, req.URL.Path)
	}
	if len(methods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(methods, ","))
	}

	requested := req.Header.Get("Access-Control-Request-Headers")
	switch {
	case headersWildcard:
		if requested != "" {
			w.Header().Set("Access-Control-Allow-Headers", requested)
		}
	case len(cfg.AllowedHeaders) > 0:
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
	case requested != "":
		w.Header().Set("Access-Control-Allow-Headers", requested)
	}

	if cfg.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
	} else if cfg.MaxAge < 0 {
		w.Header().Set("Access-Control-Max-Age", "0")
	}

	w.Header().Add("Vary", "Access-Control-Request-Method")
	w.Header().Add("Vary", "Access-Control-Request-Headers")

	w.WriteHeader(http.StatusNoContent)
}

// interceptPreflight chains onto the router's MethodNotAllowedHandler so
// preflight OPTIONS requests for routes without an OPTIONS handler still
// get CORS treatment instead of a bare 405.
func interceptPreflight(r *router.Router, cfg *CORSConfig, m *originMatcher, headersWildcard bool) {
	prev := r.MethodNotAllowedHandler

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin != "" && isPreflight(req) && m.allow(origin) {
			setOriginHeaders(w, cfg, m, origin)
			writePreflight(w, req, r, cfg, headersWildcard)
			return
		}

		if prev != nil {
			prev.ServeHTTP(w, req)
			return
		}

		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
}

// discoverMethods probes the router for every method registered at path,
// so preflight responses advertise the real surface without configuration.
func discoverMethods(r *router.Router, path string) []string {
	var methods []string
	seen := make(map[string]bool)

	for _, route := range r.Routes() {
		method := route.Method()
		if seen[method] {
			continue
		}
		if _, _, err := r.Lookup(method, path); err == nil {
			seen[method] = true
			methods = append(methods, method)
		}
	}

	return methods
}
