package pipeline

import (
	"net/http"
	"time"
)

// Context is the default handler.Context implementation.
// It delegates all context.Context methods to the current request's context
// and keeps request-scoped values set through SetValue.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	values map[any]any
}

// NewContext creates a Context for the given request.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

// Deadline delegates to the request context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns a value stored with SetValue, falling back to the request context.
func (c *Context) Value(key any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return c.r.Context().Value(key)
}

// Request returns the current request.
func (c *Context) Request() *http.Request {
	return c.r
}

// SetRequest replaces the current request. Nil is ignored.
func (c *Context) SetRequest(r *http.Request) {
	if r != nil {
		c.r = r
	}
}

// ResponseWriter returns the response writer.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// SetValue stores a request-scoped value.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
