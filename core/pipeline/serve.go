package pipeline

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/logger"
)

// pipelineHandler runs a built chain for every request.
// It only reads its fields, so it is safe for concurrent use.
type pipelineHandler[C handler.Context] struct {
	fn           handler.HandlerFunc[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// ServeHTTP implements http.Handler.
func (h *pipelineHandler[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := h.newContext(ww, r)

	// Recover from panics to prevent server crashes
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// Can't send error response, just log the panic
				h.logger.Error("panic after response written",
					slog.Any("value", panicErr.value),
					slog.String("stack", string(panicErr.stack)),
					logger.Path(r.URL.Path),
					logger.Method(r.Method),
					logger.StatusCode(ww.Status()),
				)
				return
			}
			h.errorHandler(ctx, panicErr)
		}
	}()

	response := h.fn(ctx)
	if response == nil {
		h.errorHandler(ctx, ErrNilResponse)
		return
	}

	// Stages may have rewritten the request; render against the latest one.
	if err := response(ww, ctx.Request()); err != nil {
		h.errorHandler(ctx, err)
	}
}
