package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/logger"
	"github.com/dmitrymomot/fileserver/core/response"
)

// Stage is a single middleware registered in a Builder.
type Stage[C handler.Context] struct {
	// Name identifies the stage in introspection and logs.
	Name string
	// Path is the request path scope the stage was registered for.
	// Empty means the application root.
	Path string
	// Middleware is the stage implementation.
	Middleware handler.Middleware[C]
}

// StageInfo describes a registered stage without exposing its implementation.
type StageInfo struct {
	Name string
	Path string
}

// Builder accumulates an ordered chain of stages.
// Stages run in registration order; each one either short-circuits with
// its own response or forwards to the next stage.
// A Builder is not safe for concurrent mutation.
type Builder[C handler.Context] struct {
	stages       []Stage[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// New creates an empty pipeline builder.
func New[C handler.Context](opts ...Option[C]) *Builder[C] {
	b := &Builder[C]{
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Use appends a stage and returns the builder for chaining.
// Panics if name is empty or mw is nil.
func (b *Builder[C]) Use(name, path string, mw handler.Middleware[C]) *Builder[C] {
	if name == "" {
		panic(fmt.Errorf("%w: empty stage name", ErrInvalidStage))
	}
	if mw == nil {
		panic(fmt.Errorf("%w: nil middleware for stage '%s'", ErrInvalidStage, name))
	}

	b.stages = append(b.stages, Stage[C]{Name: name, Path: path, Middleware: mw})
	b.logger.Debug("pipeline stage registered",
		logger.Stage(name),
		logger.Path(path),
		logger.Count("position", len(b.stages)),
	)

	return b
}

// Stages returns a snapshot of the registered stages in order.
func (b *Builder[C]) Stages() []StageInfo {
	out := make([]StageInfo, len(b.stages))
	for i, s := range b.stages {
		out[i] = StageInfo{Name: s.Name, Path: s.Path}
	}
	return out
}

// Len returns the number of registered stages.
func (b *Builder[C]) Len() int {
	return len(b.stages)
}

// Logger returns the builder's logger so stages can log with the same sink.
func (b *Builder[C]) Logger() *slog.Logger {
	return b.logger
}

// Build composes the registered stages around terminal.
// A nil terminal reports response.ErrNotFound.
// Stages registered after Build are not part of the returned handler.
func (b *Builder[C]) Build(terminal handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	if terminal == nil {
		terminal = response.NotFound[C]
	}

	mws := make([]handler.Middleware[C], len(b.stages))
	for i, s := range b.stages {
		mws[i] = s.Middleware
	}

	return handler.Chain(mws, terminal)
}

// Handler builds the pipeline into an http.Handler.
// Panics with ErrNoContextFactory if C is not *Context and no factory was set.
func (b *Builder[C]) Handler(terminal handler.HandlerFunc[C]) http.Handler {
	newCtx := b.newContext
	if newCtx == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		newCtx = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	errorHandler := b.errorHandler
	if errorHandler == nil {
		errorHandler = defaultErrorHandler[C](b.logger)
	}

	return &pipelineHandler[C]{
		fn:           b.Build(terminal),
		errorHandler: errorHandler,
		newContext:   newCtx,
		logger:       b.logger,
	}
}
