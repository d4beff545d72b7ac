// Package pipeline provides an ordered, append-only builder of request
// handling stages and turns it into an http.Handler.
//
// Each stage is a named handler.Middleware registered with an optional
// request path scope. Stages run in registration order; a stage either
// short-circuits with its own response or forwards to the next one.
// Use returns the builder so registrations can be chained:
//
//	b := pipeline.New[*pipeline.Context](pipeline.WithLogger[*pipeline.Context](log))
//	b.Use("request-id", "", middleware.RequestID[*pipeline.Context]()).
//		Use("logging", "", middleware.Logging[*pipeline.Context](log))
//	static.UseFileServer(b)
//
//	http.ListenAndServe(":8080", b.Handler(nil))
//
// Stages() exposes the registered names and path scopes for introspection.
//
// Handler creates a request context per request (the default *Context, or the
// factory given with WithContextFactory), recovers panics into PanicError,
// and reports errors returned by responses through the error handler. The
// default error handler writes http.Error with the status provided by the
// error's StatusCode() method, or 500. The body is the status text (or the
// message of a 4xx response.HTTPError), never the error string; 5xx errors
// are logged through the builder's logger.
package pipeline
