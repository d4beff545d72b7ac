package static_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/static"
)

func TestUseFileServerWithOptions_StageOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		defaultFiles      bool
		directoryBrowsing bool
		want              []string
	}{
		{
			name: "no optional stages",
			want: []string{static.StageSendFileFallback, static.StageStaticFiles},
		},
		{
			name:         "default files only",
			defaultFiles: true,
			want:         []string{static.StageDefaultFiles, static.StageSendFileFallback, static.StageStaticFiles},
		},
		{
			name:              "directory browsing only",
			directoryBrowsing: true,
			want:              []string{static.StageDirectoryBrowser, static.StageSendFileFallback, static.StageStaticFiles},
		},
		{
			name:              "all stages",
			defaultFiles:      true,
			directoryBrowsing: true,
			want: []string{
				static.StageDefaultFiles,
				static.StageDirectoryBrowser,
				static.StageSendFileFallback,
				static.StageStaticFiles,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := pipeline.New[ctx]()
			got := static.UseFileServerWithOptions(b, &static.FileServerOptions{
				EnableDefaultFiles:      tt.defaultFiles,
				EnableDirectoryBrowsing: tt.directoryBrowsing,
			})

			assert.Same(t, b, got)
			assert.Equal(t, tt.want, stageNames(b))

			flags := 0
			if tt.defaultFiles {
				flags++
			}
			if tt.directoryBrowsing {
				flags++
			}
			assert.Equal(t, 2+flags, b.Len())

			names := stageNames(b)
			require.GreaterOrEqual(t, len(names), 2)
			assert.Equal(t, static.StageSendFileFallback, names[len(names)-2])
			assert.Equal(t, static.StageStaticFiles, names[len(names)-1])
		})
	}
}

func TestUseFileServer(t *testing.T) {
	t.Parallel()

	t.Run("defaults enable default files only", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		assert.Same(t, b, static.UseFileServer(b))
		assert.Equal(t, []string{
			static.StageDefaultFiles,
			static.StageSendFileFallback,
			static.StageStaticFiles,
		}, stageNames(b))

		for _, s := range b.Stages() {
			assert.Empty(t, s.Path, s.Name)
		}
	})

	t.Run("browsing on", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		static.UseFileServerWithBrowsing(b, true)
		assert.Equal(t, []string{
			static.StageDefaultFiles,
			static.StageDirectoryBrowser,
			static.StageSendFileFallback,
			static.StageStaticFiles,
		}, stageNames(b))
	})

	t.Run("browsing off", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		static.UseFileServerWithBrowsing(b, false)
		assert.Equal(t, []string{
			static.StageDefaultFiles,
			static.StageSendFileFallback,
			static.StageStaticFiles,
		}, stageNames(b))
	})

	t.Run("request path scopes every stage", func(t *testing.T) {
		t.Parallel()

		for _, p := range []string{"/assets", "/assets/"} {
			b := pipeline.New[ctx]()
			static.UseFileServerAt(b, p)

			require.Equal(t, 3, b.Len())
			for _, s := range b.Stages() {
				assert.Equal(t, "/assets", s.Path, s.Name)
			}
		}
	})

	t.Run("stage path overrides shared path", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		static.UseFileServerWithOptions(b, &static.FileServerOptions{
			RequestPath:        "/site",
			EnableDefaultFiles: true,
			StaticFiles:        static.StaticFileOptions{RequestPath: "/site/files"},
		})

		assert.Equal(t, []pipeline.StageInfo{
			{Name: static.StageDefaultFiles, Path: "/site"},
			{Name: static.StageSendFileFallback, Path: "/site"},
			{Name: static.StageStaticFiles, Path: "/site/files"},
		}, b.Stages())
	})

	t.Run("repeated composition concatenates", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		static.UseFileServerWithOptions(
			static.UseFileServerAt(b, "/a"),
			&static.FileServerOptions{RequestPath: "/b", EnableDirectoryBrowsing: true},
		)

		assert.Equal(t, []pipeline.StageInfo{
			{Name: static.StageDefaultFiles, Path: "/a"},
			{Name: static.StageSendFileFallback, Path: "/a"},
			{Name: static.StageStaticFiles, Path: "/a"},
			{Name: static.StageDirectoryBrowser, Path: "/b"},
			{Name: static.StageSendFileFallback, Path: "/b"},
			{Name: static.StageStaticFiles, Path: "/b"},
		}, b.Stages())
	})

	t.Run("options are not modified", func(t *testing.T) {
		t.Parallel()

		fsys := fixtureFS()
		opts := &static.FileServerOptions{
			RequestPath:        "/assets/",
			FileSystem:         fsys,
			EnableDefaultFiles: true,
		}
		before := *opts

		static.UseFileServerWithOptions(pipeline.New[ctx](), opts)
		assert.Equal(t, before, *opts)
	})
}

func TestUseFileServer_InvalidArguments(t *testing.T) {
	t.Parallel()

	t.Run("nil builder", func(t *testing.T) {
		t.Parallel()

		requireInvalidArgument(t, func() { static.UseFileServer[ctx](nil) })
		requireInvalidArgument(t, func() { static.UseFileServerWithBrowsing[ctx](nil, true) })
		requireInvalidArgument(t, func() { static.UseFileServerAt[ctx](nil, "/assets") })
		requireInvalidArgument(t, func() { static.UseFileServerWithOptions[ctx](nil, static.NewFileServerOptions()) })
	})

	t.Run("nil options leaves builder untouched", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		static.UseFileServer(b)

		requireInvalidArgument(t, func() { static.UseFileServerWithOptions(b, nil) })
		assert.Equal(t, 3, b.Len())
	})

	t.Run("empty request path", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		requireInvalidArgument(t, func() { static.UseFileServerAt(b, "") })
		assert.Zero(t, b.Len())
	})

	t.Run("relative request path", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		requireInvalidArgument(t, func() { static.UseFileServerAt(b, "assets") })
		assert.Zero(t, b.Len())
	})

	t.Run("invalid stage path appends nothing", func(t *testing.T) {
		t.Parallel()

		b := pipeline.New[ctx]()
		requireInvalidArgument(t, func() {
			static.UseFileServerWithOptions(b, &static.FileServerOptions{
				EnableDefaultFiles:      true,
				EnableDirectoryBrowsing: true,
				StaticFiles:             static.StaticFileOptions{RequestPath: "files"},
			})
		})
		assert.Zero(t, b.Len())
	})
}

func TestFileServer_Serving(t *testing.T) {
	t.Parallel()

	newServer := func(opts *static.FileServerOptions) http.Handler {
		return static.UseFileServerWithOptions(pipeline.New[ctx](), opts).Handler(nil)
	}

	t.Run("serves default document for root", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.FileSystem = fixtureFS()

		w := do(t, newServer(opts), http.MethodGet, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<h1>home</h1>", w.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("redirects directory without slash", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.FileSystem = fixtureFS()

		w := do(t, newServer(opts), http.MethodGet, "/docs")
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/docs/", w.Header().Get("Location"))
	})

	t.Run("directory with default document is served, not listed", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.FileSystem = fixtureFS()
		opts.EnableDirectoryBrowsing = true

		w := do(t, newServer(opts), http.MethodGet, "/docs/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "docs index", w.Body.String())
	})

	t.Run("directory without default document is listed when browsing", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.FileSystem = fixtureFS()
		opts.EnableDirectoryBrowsing = true

		w := do(t, newServer(opts), http.MethodGet, "/gallery/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cat.png")
	})

	t.Run("directory without default document is not found without browsing", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.FileSystem = fixtureFS()

		w := do(t, newServer(opts), http.MethodGet, "/gallery/")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		w := do(t, newServer(&static.FileServerOptions{FileSystem: fixtureFS()}), http.MethodGet, "/nope.txt")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("scoped server ignores other paths", func(t *testing.T) {
		t.Parallel()

		opts := static.NewFileServerOptions()
		opts.RequestPath = "/assets"
		opts.FileSystem = fixtureFS()

		b := static.UseFileServerWithOptions(pipeline.New[ctx](), opts)
		h := b.Handler(echoPath)

		// /assets/ maps to the file system root, which has index.html
		w := do(t, h, http.MethodGet, "/assets/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<h1>home</h1>", w.Body.String())

		w = do(t, h, http.MethodGet, "/assets/app.js")
		assert.Equal(t, "console.log(1)", w.Body.String())

		w = do(t, h, http.MethodGet, "/app.js")
		assertTerminal(t, w, "/app.js")
	})

	t.Run("falls through to terminal", func(t *testing.T) {
		t.Parallel()

		b := static.UseFileServerWithOptions(pipeline.New[ctx](), &static.FileServerOptions{FileSystem: fixtureFS()})
		h := b.Handler(func(c ctx) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusTeapot)
				return nil
			}
		})

		w := do(t, h, http.MethodPost, "/app.js")
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := static.DefaultConfig()
	cfg.RequestPath = "/static"
	cfg.EnableDirectoryBrowsing = true
	cfg.DefaultFileNames = []string{"home.html"}
	cfg.CacheControl = "public, max-age=60"

	opts := static.NewFromConfig(cfg, fixtureFS())
	assert.True(t, opts.EnableDefaultFiles)
	assert.True(t, opts.EnableDirectoryBrowsing)
	assert.Equal(t, "/static", opts.RequestPath)
	assert.Equal(t, []string{"home.html"}, opts.DefaultFiles.DefaultFileNames)

	h := static.UseFileServerWithOptions(pipeline.New[ctx](), opts).Handler(nil)

	w := do(t, h, http.MethodGet, "/static/docs/")
	assert.Equal(t, "docs home", w.Body.String())
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	local := static.NewFromConfig(static.Config{}, nil)
	assert.Equal(t, http.Dir("."), local.FileSystem)
}

func TestFileServer_DotSegments(t *testing.T) {
	t.Parallel()

	opts := static.NewFileServerOptions()
	opts.RequestPath = "/assets"
	opts.FileSystem = fixtureFS()
	h := static.UseFileServerWithOptions(pipeline.New[ctx](), opts).Handler(echoPath)

	t.Run("climbing out of scope is not served", func(t *testing.T) {
		t.Parallel()

		w := do(t, h, http.MethodGet, "/assets/../index.html")
		assertTerminal(t, w, "/assets/../index.html")
	})

	t.Run("resolved inside scope is served", func(t *testing.T) {
		t.Parallel()

		w := do(t, h, http.MethodGet, "/assets/css/../app.js")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "console.log(1)", w.Body.String())
	})
}

func TestNewFileServerOptions(t *testing.T) {
	t.Parallel()

	opts := static.NewFileServerOptions()
	assert.True(t, opts.EnableDefaultFiles)
	assert.False(t, opts.EnableDirectoryBrowsing)
	assert.Empty(t, opts.RequestPath)
	assert.Equal(t, http.Dir("."), opts.FileSystem)
}
