package static

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
)

// FileServerOptions groups the settings of all file serving stages.
//
// RequestPath and FileSystem are shared: a stage whose own options leave
// the field empty inherits the value set here. The zero value disables both
// default files and directory browsing; use NewFileServerOptions for the
// usual defaults.
type FileServerOptions struct {
	// RequestPath scopes every stage; empty means the application root.
	RequestPath string
	// FileSystem is the default file source of every stage (default: http.Dir(".")).
	FileSystem http.FileSystem

	// EnableDefaultFiles adds the default document stage.
	EnableDefaultFiles bool
	// EnableDirectoryBrowsing adds the directory listing stage.
	EnableDirectoryBrowsing bool

	DefaultFiles     DefaultFilesOptions
	DirectoryBrowser DirectoryBrowserOptions
	StaticFiles      StaticFileOptions
}

// NewFileServerOptions returns options with default files on, directory
// browsing off, the root request path and the current directory.
func NewFileServerOptions() *FileServerOptions {
	return &FileServerOptions{
		EnableDefaultFiles: true,
		FileSystem:         http.Dir("."),
	}
}

// UseFileServer enables default files, send file fallback and static files
// for the root request path from the current directory.
func UseFileServer[C handler.Context](b *pipeline.Builder[C]) *pipeline.Builder[C] {
	return UseFileServerWithOptions(b, NewFileServerOptions())
}

// UseFileServerWithBrowsing is UseFileServer with directory browsing set to enable.
func UseFileServerWithBrowsing[C handler.Context](b *pipeline.Builder[C], enable bool) *pipeline.Builder[C] {
	opts := NewFileServerOptions()
	opts.EnableDirectoryBrowsing = enable
	return UseFileServerWithOptions(b, opts)
}

// UseFileServerAt is UseFileServer scoped to requestPath.
// Panics with ErrInvalidArgument if requestPath is empty or does not start with '/'.
func UseFileServerAt[C handler.Context](b *pipeline.Builder[C], requestPath string) *pipeline.Builder[C] {
	if b == nil {
		panic(fmt.Errorf("%w: nil builder", ErrInvalidArgument))
	}
	if requestPath == "" {
		panic(fmt.Errorf("%w: empty request path", ErrInvalidArgument))
	}

	opts := NewFileServerOptions()
	opts.RequestPath = requestPath
	return UseFileServerWithOptions(b, opts)
}

// UseFileServerWithOptions appends the file serving stages to b in a fixed order:
//
//	default-files       (if EnableDefaultFiles)
//	directory-browser   (if EnableDirectoryBrowsing)
//	send-file-fallback
//	static-files
//
// Default documents are resolved first so a directory with an index is served
// rather than listed; listing comes before static files so an unresolved
// directory is listed rather than reported missing. opts is not modified.
//
// Panics with ErrInvalidArgument if b or opts is nil or a request path is
// malformed. Nothing is appended when it panics.
func UseFileServerWithOptions[C handler.Context](b *pipeline.Builder[C], opts *FileServerOptions) *pipeline.Builder[C] {
	if b == nil {
		panic(fmt.Errorf("%w: nil builder", ErrInvalidArgument))
	}
	if opts == nil {
		panic(fmt.Errorf("%w: nil file server options", ErrInvalidArgument))
	}

	stages, err := opts.resolve()
	if err != nil {
		panic(err)
	}

	if opts.EnableDefaultFiles {
		UseDefaultFiles(b, stages.defaultFiles)
	}
	if opts.EnableDirectoryBrowsing {
		UseDirectoryBrowser(b, stages.directoryBrowser)
	}

	UseSendFileFallback(b, stages.requestPath)
	return UseStaticFiles(b, stages.staticFiles)
}

// resolvedStages holds per-stage option copies with shared values applied.
type resolvedStages struct {
	requestPath      string
	defaultFiles     DefaultFilesOptions
	directoryBrowser DirectoryBrowserOptions
	staticFiles      StaticFileOptions
}

// resolve validates every request path and applies the shared settings to
// copies of the stage options.
func (o *FileServerOptions) resolve() (resolvedStages, error) {
	shared, err := normalizeRequestPath(o.RequestPath)
	if err != nil {
		return resolvedStages{}, err
	}

	out := resolvedStages{
		requestPath:      shared,
		defaultFiles:     o.DefaultFiles,
		directoryBrowser: o.DirectoryBrowser,
		staticFiles:      o.StaticFiles,
	}

	scope := func(own string) (string, error) {
		if own == "" {
			return shared, nil
		}
		return normalizeRequestPath(own)
	}

	if out.defaultFiles.RequestPath, err = scope(o.DefaultFiles.RequestPath); err != nil {
		return resolvedStages{}, err
	}
	if out.directoryBrowser.RequestPath, err = scope(o.DirectoryBrowser.RequestPath); err != nil {
		return resolvedStages{}, err
	}
	if out.staticFiles.RequestPath, err = scope(o.StaticFiles.RequestPath); err != nil {
		return resolvedStages{}, err
	}

	if out.defaultFiles.FileSystem == nil {
		out.defaultFiles.FileSystem = o.FileSystem
	}
	if out.directoryBrowser.FileSystem == nil {
		out.directoryBrowser.FileSystem = o.FileSystem
	}
	if out.staticFiles.FileSystem == nil {
		out.staticFiles.FileSystem = o.FileSystem
	}

	return out, nil
}
