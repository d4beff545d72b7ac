// Package handler provides the type-safe building blocks shared by every
// pipeline stage: the request Context contract, the Response renderer,
// HandlerFunc, ErrorHandler and Middleware.
//
// Handlers are split in two phases. A HandlerFunc inspects the context and
// decides what to do, returning a Response. The Response is rendered later
// by the pipeline against the (possibly rewritten) request:
//
//	func hello(ctx *pipeline.Context) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			_, err := w.Write([]byte("hello"))
//			return err
//		}
//	}
//
// Middleware wraps a HandlerFunc and either short-circuits with its own
// Response or forwards to the next handler:
//
//	func onlyGet[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				if ctx.Request().Method != http.MethodGet {
//					return func(w http.ResponseWriter, r *http.Request) error {
//						w.WriteHeader(http.StatusMethodNotAllowed)
//						return nil
//					}
//				}
//				return next(ctx)
//			}
//		}
//	}
//
// Chain composes a middleware slice around an endpoint so that the first
// middleware in the slice runs first.
package handler
