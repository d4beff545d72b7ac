package static

import (
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/response"
)

// StageDirectoryBrowser is the pipeline stage name of the directory listing stage.
const StageDirectoryBrowser = "directory-browser"

// DirectoryFormatter renders a directory listing.
// requestPath is the full URL path of the directory, ending in '/'.
// Entries are sorted: directories first, then by name.
type DirectoryFormatter interface {
	Format(w http.ResponseWriter, r *http.Request, requestPath string, entries []fs.FileInfo) error
}

// DirectoryBrowserOptions configures the directory listing stage.
type DirectoryBrowserOptions struct {
	// RequestPath scopes the stage; empty means the application root.
	RequestPath string
	// FileSystem is the directory source (default: http.Dir(".")).
	FileSystem http.FileSystem
	// Formatter renders the listing (default: HTMLFormatter).
	Formatter DirectoryFormatter
}

// DirectoryBrowser creates a stage that lists directory contents.
// Requests for a directory without a trailing slash are redirected (301).
// Anything that is not a directory is forwarded.
// Panics if opts.RequestPath does not start with '/'.
func DirectoryBrowser[C handler.Context](opts DirectoryBrowserOptions) handler.Middleware[C] {
	scope := mustRequestPath(opts.RequestPath)
	fsys := fileSystemOrDefault(opts.FileSystem)
	formatter := opts.Formatter
	if formatter == nil {
		formatter = HTMLFormatter{}
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

			if !strings.HasSuffix(r.URL.Path, "/") {
				return response.RedirectPermanent(slashRedirectTarget(r.URL))
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				entries, err := readDir(fsys, dir)
				if err != nil {
					return err
				}
				return formatter.Format(w, r, r.URL.Path, entries)
			}
		}
	}
}

// UseDirectoryBrowser appends the directory listing stage to b.
func UseDirectoryBrowser[C handler.Context](b *pipeline.Builder[C], opts DirectoryBrowserOptions) *pipeline.Builder[C] {
	return b.Use(StageDirectoryBrowser, mustRequestPath(opts.RequestPath), DirectoryBrowser[C](opts))
}

func readDir(fsys http.FileSystem, name string) ([]fs.FileInfo, error) {
	f, err := open(fsys, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	entries, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}
