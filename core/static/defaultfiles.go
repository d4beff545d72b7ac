package static

import (
	"net/http"
	"slices"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/response"
)

// StageDefaultFiles is the pipeline stage name of the default document stage.
const StageDefaultFiles = "default-files"

// DefaultFilesOptions configures the default document stage.
type DefaultFilesOptions struct {
	// RequestPath scopes the stage; empty means the application root.
	RequestPath string
	// FileSystem is searched for default documents (default: http.Dir(".")).
	FileSystem http.FileSystem
	// DefaultFileNames are tried in order (default: DefaultFileNames()).
	DefaultFileNames []string
}

// DefaultFileNames returns the document names tried when none are configured.
func DefaultFileNames() []string {
	return []string{"default.htm", "default.html", "index.htm", "index.html"}
}

// DefaultFiles creates a stage that rewrites directory requests to the first
// default document found in that directory. A later stage serves the file.
// Requests for such a directory without a trailing slash are redirected (301)
// so relative links resolve against the directory.
// Panics if opts.RequestPath does not start with '/'.
func DefaultFiles[C handler.Context](opts DefaultFilesOptions) handler.Middleware[C] {
	scope := mustRequestPath(opts.RequestPath)
	fsys := fileSystemOrDefault(opts.FileSystem)
	names := slices.Clone(opts.DefaultFileNames)
	if len(names) == 0 {
		names = DefaultFileNames()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			if !isGetOrHead(r.Method) {
				return next(ctx)
			}

			dir, ok := matchPath(r.URL.Path, scope, true)
			if !ok || !isDir(fsys, dir) {
				return next(ctx)
			}

			for _, name := range names {
				info, err := stat(fsys, dir+name)
				if err != nil || info.IsDir() {
					continue
				}

				if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] != '/' {
					return response.RedirectPermanent(slashRedirectTarget(r.URL))
				}

				rewritten := r.Clone(r.Context())
				rewritten.URL.Path = r.URL.Path + name
				rewritten.URL.RawPath = ""
				ctx.SetRequest(rewritten)
				break
			}

			return next(ctx)
		}
	}
}

// UseDefaultFiles appends the default document stage to b.
func UseDefaultFiles[C handler.Context](b *pipeline.Builder[C], opts DefaultFilesOptions) *pipeline.Builder[C] {
	return b.Use(StageDefaultFiles, mustRequestPath(opts.RequestPath), DefaultFiles[C](opts))
}
