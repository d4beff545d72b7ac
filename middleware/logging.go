package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/logger"
	"github.com/dmitrymomot/fileserver/core/pipeline"
)

// StageLogging is the pipeline stage name of the access log middleware.
const StageLogging = "logging"

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: discard)
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// TrustProxyHeaders reads the client IP from X-Forwarded-For and X-Real-IP
	TrustProxyHeaders bool

	// Component name for structured logging (default: "http")
	Component string
}

// Logging creates an access log middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithConfig creates an access log middleware with custom configuration.
// One record is written per request after the response is rendered, at
// error level for 5xx, warning level for 4xx and slow requests.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w}
				err := response(wrapped, r)

				status := wrapped.status()
				if err != nil && !wrapped.headerWritten {
					// the pipeline error handler writes the status after us
					status = errorStatus(err)
				}
				duration := time.Since(start)

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(wrapped.size),
					logger.Duration(duration),
					logger.ClientIP(clientIP(req, cfg.TrustProxyHeaders)),
					logger.UserAgent(req.UserAgent()),
				}
				if requestID, ok := GetRequestID(ctx); ok {
					attrs = append(attrs, logger.RequestID(requestID))
				}
				if r.URL.Path != req.URL.Path {
					attrs = append(attrs, slog.String("served_path", r.URL.Path))
				}
				if req.URL.RawQuery != "" {
					attrs = append(attrs, slog.String("query", req.URL.RawQuery))
				}
				if rng := req.Header.Get("Range"); rng != "" {
					attrs = append(attrs, slog.String("range", rng))
				}

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				// The request ID is attached above; a background context keeps
				// context extractors from adding it a second time.
				cfg.Logger.LogAttrs(context.Background(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

// UseLogging appends the access log stage to b for every path.
func UseLogging[C handler.Context](b *pipeline.Builder[C], cfg LoggingConfig) *pipeline.Builder[C] {
	if cfg.Logger == nil {
		cfg.Logger = b.Logger()
	}
	return b.Use(StageLogging, "", LoggingWithConfig[C](cfg))
}

type statusCoder interface {
	StatusCode() int
}

func errorStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// responseWriter wraps http.ResponseWriter to capture response details
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int64
	headerWritten bool
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.headerWritten {
		rw.statusCode = statusCode
		rw.headerWritten = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write captures the response size
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += int64(size)
	return size, err
}

func (rw *responseWriter) status() int {
	if !rw.headerWritten {
		return http.StatusOK
	}
	return rw.statusCode
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
