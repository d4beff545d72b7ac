package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/logger"
	"github.com/dmitrymomot/fileserver/core/response"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrNilResponse      = errors.New("nil response")
	ErrInvalidStage     = errors.New("invalid pipeline stage")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler writes a plain text error with the error's status.
// Clients only see the status text, or the message of a 4xx
// response.HTTPError; the error itself may carry backend details (bucket
// names, file paths, panic values), so 5xx errors are logged instead.
func defaultErrorHandler[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		w := ctx.ResponseWriter()

		// Prevent double-writing responses which causes HTTP protocol errors
		if ww, ok := w.(*responseWriter); ok && ww.Written() {
			return
		}

		status := http.StatusInternalServerError
		var sc statusCode
		if errors.As(err, &sc) {
			status = sc.StatusCode()
		}

		message := http.StatusText(status)
		var httpErr response.HTTPError
		if status < http.StatusInternalServerError && errors.As(err, &httpErr) && httpErr.Message != "" {
			message = httpErr.Message
		}

		if status >= http.StatusInternalServerError {
			r := ctx.Request()
			log.LogAttrs(ctx, slog.LevelError, "request failed",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(status),
				logger.Error(err),
			)
		}

		http.Error(w, message, status)
	}
}

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the pipeline, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
