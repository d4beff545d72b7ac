package pipeline

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
)

// Option configures a Builder during creation.
type Option[C handler.Context] func(*Builder[C])

// WithErrorHandler sets a custom error handler for the pipeline.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(b *Builder[C]) {
		if h != nil {
			b.errorHandler = h
		}
	}
}

// WithContextFactory sets a custom context factory.
// Required when C is not *Context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(b *Builder[C]) {
		b.newContext = f
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger[C handler.Context](log *slog.Logger) Option[C] {
	return func(b *Builder[C]) {
		if log != nil {
			b.logger = log
		}
	}
}
