package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/response"
)

// StageStaticFiles is the pipeline stage name of the static file stage.
const StageStaticFiles = "static-files"

// StaticFileResponse is passed to OnPrepareResponse before a file is sent.
type StaticFileResponse struct {
	Request *http.Request
	Header  http.Header
	// Name is the file's path inside the file system.
	Name string
	Info fs.FileInfo
}

// StaticFileOptions configures the static file stage.
type StaticFileOptions struct {
	// RequestPath scopes the stage; empty means the application root.
	RequestPath string
	// FileSystem is the file source (default: http.Dir(".")).
	FileSystem http.FileSystem
	// ContentTypeProvider resolves Content-Type (default: NewExtensionContentTypeProvider()).
	ContentTypeProvider ContentTypeProvider
	// ServeUnknownFileTypes serves files without a known type using DefaultContentType.
	// Off by default, so unknown types fall through to the next stage.
	ServeUnknownFileTypes bool
	// DefaultContentType is used for unknown types when ServeUnknownFileTypes is set
	// (default: "application/octet-stream").
	DefaultContentType string
	// OnPrepareResponse is called after headers are set and before the body is sent.
	OnPrepareResponse func(StaticFileResponse)
}

// StaticFiles creates the terminal file stage. GET and HEAD requests for an
// existing regular file of a known type are served through the FileSender
// installed on the context (ServeContentSender if none). Everything else is
// forwarded. Panics if opts.RequestPath does not start with '/'.
func StaticFiles[C handler.Context](opts StaticFileOptions) handler.Middleware[C] {
	scope := mustRequestPath(opts.RequestPath)
	fsys := fileSystemOrDefault(opts.FileSystem)

	var types ContentTypeProvider = NewExtensionContentTypeProvider()
	if opts.ContentTypeProvider != nil {
		types = opts.ContentTypeProvider
	}
	defaultType := firstNonEmpty(opts.DefaultContentType, "application/octet-stream")

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			if !isGetOrHead(r.Method) {
				return next(ctx)
			}

			name, ok := matchPath(r.URL.Path, scope, false)
			if !ok {
				return next(ctx)
			}

			contentType, known := types.ContentType(name)
			if !known {
				if !opts.ServeUnknownFileTypes {
					return next(ctx)
				}
				contentType = defaultType
			}

			info, err := stat(fsys, name)
			if err != nil || info.IsDir() {
				return next(ctx)
			}

			sender, installed := SenderFrom(ctx)
			if !installed {
				sender = ServeContentSender{}
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				f, err := open(fsys, name)
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						return fmt.Errorf("%w: %w: %s", response.ErrNotFound, ErrFileVanished, name)
					}
					return err
				}
				defer func() { _ = f.Close() }()

				h := w.Header()
				h.Set("Content-Type", contentType)
				h.Set("ETag", etag(info))

				if opts.OnPrepareResponse != nil {
					opts.OnPrepareResponse(StaticFileResponse{
						Request: r,
						Header:  h,
						Name:    name,
						Info:    info,
					})
				}

				return sender.SendFile(w, r, name, info, f)
			}
		}
	}
}

// UseStaticFiles appends the static file stage to b.
func UseStaticFiles[C handler.Context](b *pipeline.Builder[C], opts StaticFileOptions) *pipeline.Builder[C] {
	return b.Use(StageStaticFiles, mustRequestPath(opts.RequestPath), StaticFiles[C](opts))
}

// etag derives a strong validator from modification time and size.
func etag(info fs.FileInfo) string {
	return fmt.Sprintf(`"%x-%x"`, info.ModTime().UnixNano(), info.Size())
}
