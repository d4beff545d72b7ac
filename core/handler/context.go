package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Use pipeline.Context for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	// SetRequest replaces the request seen by the remaining stages and by
	// the rendered response. Stages that rewrite the URL path use it.
	SetRequest(r *http.Request)
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}
