// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a logger from functional options:
//
//	log := logger.New(
//		logger.WithProduction("fileserver"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
// WithContextExtractors injects attributes from the context passed to the
// *Context methods (InfoContext, ErrorContext, ...), for example the request
// ID stored by the request ID middleware.
//
// Attribute helpers return an empty slog.Attr for empty input so they can be
// passed unconditionally:
//
//	log.Info("request served",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Duration(time.Since(start)),
//		logger.Error(err),
//	)
package logger
