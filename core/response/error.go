package response

import (
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
)

// Error returns a handler response that propagates the given error
// to the pipeline's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// NotFound is a terminal handler that reports ErrNotFound.
// The pipeline uses it when no terminal handler is given.
func NotFound[C handler.Context](ctx C) handler.Response {
	return Error(ErrNotFound)
}
