package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
)

// StageSecurityHeaders is the pipeline stage name of the security headers middleware.
const StageSecurityHeaders = "security-headers"

// SecurityHeadersConfig configures the security headers middleware.
// Empty fields are not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// ContentTypeOptions controls X-Content-Type-Options header
	ContentTypeOptions string

	// FrameOptions controls X-Frame-Options header
	FrameOptions string

	// ReferrerPolicy controls Referrer-Policy header
	ReferrerPolicy string

	// CrossOriginResourcePolicy controls Cross-Origin-Resource-Policy header
	CrossOriginResourcePolicy string

	// StrictTransportSecurity controls Strict-Transport-Security header
	StrictTransportSecurity string

	// CustomHeaders allows adding additional headers
	CustomHeaders map[string]string
}

// StaticSecurity suits public static content: no MIME sniffing, no framing
// from other origins, resources loadable cross-origin.
var StaticSecurity = SecurityHeadersConfig{
	ContentTypeOptions:        "nosniff",
	FrameOptions:              "SAMEORIGIN",
	ReferrerPolicy:            "strict-origin-when-cross-origin",
	CrossOriginResourcePolicy: "cross-origin",
}

// SecurityHeaders creates a security headers middleware with StaticSecurity.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](StaticSecurity)
}

// SecurityHeadersWithConfig creates a security headers middleware with custom configuration.
// Headers are set before the response is rendered, so later stages may override them.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := make(map[string]string)
	if cfg.ContentTypeOptions != "" {
		headers["X-Content-Type-Options"] = cfg.ContentTypeOptions
	}
	if cfg.FrameOptions != "" {
		headers["X-Frame-Options"] = cfg.FrameOptions
	}
	if cfg.ReferrerPolicy != "" {
		headers["Referrer-Policy"] = cfg.ReferrerPolicy
	}
	if cfg.CrossOriginResourcePolicy != "" {
		headers["Cross-Origin-Resource-Policy"] = cfg.CrossOriginResourcePolicy
	}
	if cfg.StrictTransportSecurity != "" {
		headers["Strict-Transport-Security"] = cfg.StrictTransportSecurity
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				return response(w, r)
			}
		}
	}
}

// UseSecurityHeaders appends the security headers stage to b for every path.
func UseSecurityHeaders[C handler.Context](b *pipeline.Builder[C], cfg SecurityHeadersConfig) *pipeline.Builder[C] {
	return b.Use(StageSecurityHeaders, "", SecurityHeadersWithConfig[C](cfg))
}
