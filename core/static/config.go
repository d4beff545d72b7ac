package static

import (
	"net/http"
)

// Config holds file server settings with environment variable support.
type Config struct {
	// Root is the local directory served when no other file system is given.
	Root string `env:"FILESERVER_ROOT" envDefault:"."`
	// RequestPath scopes all stages.
	RequestPath string `env:"FILESERVER_REQUEST_PATH" envDefault:""`

	EnableDefaultFiles      bool     `env:"FILESERVER_DEFAULT_FILES" envDefault:"true"`
	EnableDirectoryBrowsing bool     `env:"FILESERVER_DIRECTORY_BROWSING" envDefault:"false"`
	DefaultFileNames        []string `env:"FILESERVER_DEFAULT_FILE_NAMES" envSeparator:","`

	ServeUnknownFileTypes bool   `env:"FILESERVER_SERVE_UNKNOWN_TYPES" envDefault:"false"`
	DefaultContentType    string `env:"FILESERVER_DEFAULT_CONTENT_TYPE" envDefault:"application/octet-stream"`

	// CacheControl, when set, is sent with every static file.
	CacheControl string `env:"FILESERVER_CACHE_CONTROL" envDefault:""`
}

// DefaultConfig returns a Config with the same defaults as the env tags.
func DefaultConfig() Config {
	return Config{
		Root:               ".",
		EnableDefaultFiles: true,
		DefaultContentType: "application/octet-stream",
	}
}

// NewFromConfig builds FileServerOptions from cfg.
// A nil fsys serves cfg.Root from the local disk.
func NewFromConfig(cfg Config, fsys http.FileSystem) *FileServerOptions {
	if fsys == nil {
		fsys = http.Dir(firstNonEmpty(cfg.Root, "."))
	}

	opts := &FileServerOptions{
		RequestPath:             cfg.RequestPath,
		FileSystem:              fsys,
		EnableDefaultFiles:      cfg.EnableDefaultFiles,
		EnableDirectoryBrowsing: cfg.EnableDirectoryBrowsing,
		DefaultFiles: DefaultFilesOptions{
			DefaultFileNames: cfg.DefaultFileNames,
		},
		StaticFiles: StaticFileOptions{
			ServeUnknownFileTypes: cfg.ServeUnknownFileTypes,
			DefaultContentType:    cfg.DefaultContentType,
		},
	}

	if cfg.CacheControl != "" {
		cacheControl := cfg.CacheControl
		opts.StaticFiles.OnPrepareResponse = func(resp StaticFileResponse) {
			resp.Header.Set("Cache-Control", cacheControl)
		}
	}

	return opts
}
