package routerhandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/trellis/router"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption
// is not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the Security Headers middleware
// behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options:
	// nosniff header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY", "SAMEORIGIN", or empty string.
	// Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge sets the max-age directive for the
	// Strict-Transport-Security header in seconds. When zero, the header
	// is not set.
	HSTSMaxAge int

	// HSTSIncludeSubDomains appends the includeSubDomains directive to
	// the Strict-Transport-Security header. Only effective when
	// HSTSMaxAge > 0.
	HSTSIncludeSubDomains bool

	// ContentSecurityPolicy sets the Content-Security-Policy header.
	// When empty, the header is not set.
	ContentSecurityPolicy string
}

// SecurityHeadersMiddleware returns a middleware that sets common security
// response headers. The header set is resolved once at construction and
// applied before calling the next handler.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value other
// than "DENY", "SAMEORIGIN", or empty string.
func SecurityHeadersMiddleware(cfg SecurityHeadersConfig) (router.MiddlewareFunc, error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return nil, ErrInvalidFrameOption
	}

	headers := make([][2]string, 0, 5)

	if !cfg.DisableContentTypeNosniff {
		headers = append(headers, [2]string{"X-Content-Type-Options", "nosniff"})
	}

	frameOption := cfg.FrameOption
	if frameOption == "" {
		frameOption = "DENY"
	}
	headers = append(headers, [2]string{"X-Frame-Options", frameOption})

	referrerPolicy := cfg.ReferrerPolicy
	if referrerPolicy == "" {
		referrerPolicy = "strict-origin-when-cross-origin"
	}
	headers = append(headers, [2]string{"Referrer-Policy", referrerPolicy})

	if cfg.HSTSMaxAge > 0 {
		value := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			value += "; includeSubDomains"
		}
		headers = append(headers, [2]string{"Strict-Transport-Security", value})
	}

	if cfg.ContentSecurityPolicy != "" {
		headers = append(headers, [2]string{"Content-Security-Policy", cfg.ContentSecurityPolicy})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range headers {
				h.Set(kv[0], kv[1])
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
