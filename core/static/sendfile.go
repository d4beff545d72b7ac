package static

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
)

// StageSendFileFallback is the pipeline stage name of the send file fallback.
const StageSendFileFallback = "send-file-fallback"

// StageSendFile is the pipeline stage name of an explicitly installed FileSender.
const StageSendFile = "send-file"

// FileSender performs the byte transfer of a file the static stage decided to serve.
// name is the file's path inside the file system; headers prepared by the
// static stage (Content-Type, ETag) are already set on w.
type FileSender interface {
	SendFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo, content io.ReadSeeker) error
}

// FileSenderFunc adapts a function to FileSender.
type FileSenderFunc func(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo, content io.ReadSeeker) error

// SendFile implements FileSender.
func (f FileSenderFunc) SendFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo, content io.ReadSeeker) error {
	return f(w, r, name, info, content)
}

// ServeContentSender sends files with http.ServeContent, which handles
// range requests, conditional requests and HEAD.
type ServeContentSender struct{}

// SendFile implements FileSender.
func (ServeContentSender) SendFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo, content io.ReadSeeker) error {
	http.ServeContent(w, r, path.Base(name), info.ModTime(), content)
	return nil
}

// AccelRedirectSender hands the transfer to a fronting proxy (nginx
// X-Accel-Redirect, or X-Sendfile for Apache/lighttpd) instead of writing
// the body. The proxy receives Prefix joined with the file name.
type AccelRedirectSender struct {
	// Header is the response header to set (default: "X-Accel-Redirect").
	Header string
	// Prefix is the proxy's internal location for the file system root.
	Prefix string
}

// SendFile implements FileSender.
func (s AccelRedirectSender) SendFile(w http.ResponseWriter, r *http.Request, name string, info fs.FileInfo, content io.ReadSeeker) error {
	header := s.Header
	if header == "" {
		header = "X-Accel-Redirect"
	}
	w.Header().Set(header, path.Join("/", s.Prefix, name))
	w.WriteHeader(http.StatusOK)
	return nil
}

type senderKey struct{}

// SenderFrom returns the FileSender installed for the request, if any.
func SenderFrom(ctx context.Context) (FileSender, bool) {
	s, ok := ctx.Value(senderKey{}).(FileSender)
	return s, ok && s != nil
}

// SendFileFallback creates a stage that installs ServeContentSender for
// requests under requestPath unless a sender is already installed.
// Panics if requestPath does not start with '/'.
func SendFileFallback[C handler.Context](requestPath string) handler.Middleware[C] {
	scope := mustRequestPath(requestPath)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if _, ok := matchPath(ctx.Request().URL.Path, scope, false); ok {
				if _, installed := SenderFrom(ctx); !installed {
					ctx.SetValue(senderKey{}, FileSender(ServeContentSender{}))
				}
			}
			return next(ctx)
		}
	}
}

// SendFile creates a stage that installs sender for requests under requestPath.
// A later fallback stage keeps it. Panics if sender is nil or requestPath does
// not start with '/'.
func SendFile[C handler.Context](requestPath string, sender FileSender) handler.Middleware[C] {
	if sender == nil {
		panic(fmt.Errorf("%w: nil file sender", ErrInvalidArgument))
	}
	scope := mustRequestPath(requestPath)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if _, ok := matchPath(ctx.Request().URL.Path, scope, false); ok {
				ctx.SetValue(senderKey{}, sender)
			}
			return next(ctx)
		}
	}
}

// UseSendFileFallback appends the send file fallback stage to b.
func UseSendFileFallback[C handler.Context](b *pipeline.Builder[C], requestPath string) *pipeline.Builder[C] {
	return b.Use(StageSendFileFallback, mustRequestPath(requestPath), SendFileFallback[C](requestPath))
}

// UseSendFile appends a stage installing sender to b.
func UseSendFile[C handler.Context](b *pipeline.Builder[C], requestPath string, sender FileSender) *pipeline.Builder[C] {
	return b.Use(StageSendFile, mustRequestPath(requestPath), SendFile[C](requestPath, sender))
}
