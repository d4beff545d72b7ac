// Package middleware provides pipeline stages that wrap the file server:
// request IDs, access logging and security headers.
//
// Every middleware is a handler.Middleware and has a Use helper that
// registers it on a pipeline.Builder under a fixed stage name:
//
//	b := pipeline.New[*pipeline.Context](pipeline.WithLogger[*pipeline.Context](log))
//	middleware.UseRequestID(b, middleware.RequestIDConfig{UseExisting: true})
//	middleware.UseLogging(b, middleware.LoggingConfig{})
//	middleware.UseSecurityHeaders(b, middleware.StaticSecurity)
//	static.UseFileServer(b)
//
// Register request IDs before logging so access records carry the ID.
// RequestIDExtractor does the same for any record logged with the request
// context:
//
//	log := logger.New(logger.WithContextExtractors(middleware.RequestIDExtractor))
package middleware
