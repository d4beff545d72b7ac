package static_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/static"
)

func TestDefaultFiles(t *testing.T) {
	t.Parallel()

	newHandler := func(opts static.DefaultFilesOptions) http.Handler {
		if opts.FileSystem == nil {
			opts.FileSystem = fixtureFS()
		}
		return static.UseDefaultFiles(pipeline.New[ctx](), opts).Handler(echoPath)
	}

	tests := []struct {
		name     string
		opts     static.DefaultFilesOptions
		method   string
		target   string
		status   int
		location string
		reached  string
	}{
		{name: "root rewritten", target: "/", status: http.StatusOK, reached: "/index.html"},
		{name: "subdirectory rewritten", target: "/docs/", status: http.StatusOK, reached: "/docs/index.html"},
		{name: "index.htm preferred over later names", target: "/assets/", status: http.StatusOK, reached: "/assets/index.htm"},
		{name: "missing slash redirected", target: "/docs", status: http.StatusMovedPermanently, location: "/docs/"},
		{name: "redirect keeps query", target: "/docs?lang=en", status: http.StatusMovedPermanently, location: "/docs/?lang=en"},
		{name: "directory without default document forwarded", target: "/gallery", status: http.StatusOK, reached: "/gallery"},
		{name: "directory named like default document skipped", target: "/odd/", status: http.StatusOK, reached: "/odd/"},
		{name: "file forwarded", target: "/app.js", status: http.StatusOK, reached: "/app.js"},
		{name: "missing path forwarded", target: "/missing/", status: http.StatusOK, reached: "/missing/"},
		{name: "post forwarded", method: http.MethodPost, target: "/docs/", status: http.StatusOK, reached: "/docs/"},
		{name: "head rewritten", method: http.MethodHead, target: "/docs/", status: http.StatusOK},
		{
			name:    "custom names in order",
			opts:    static.DefaultFilesOptions{DefaultFileNames: []string{"home.html", "index.html"}},
			target:  "/docs/",
			status:  http.StatusOK,
			reached: "/docs/home.html",
		},
		{
			name:    "scoped request path",
			opts:    static.DefaultFilesOptions{RequestPath: "/site"},
			target:  "/site/docs/",
			status:  http.StatusOK,
			reached: "/site/docs/index.html",
		},
		{
			name:     "scoped root redirected",
			opts:     static.DefaultFilesOptions{RequestPath: "/site"},
			target:   "/site",
			status:   http.StatusMovedPermanently,
			location: "/site/",
		},
		{
			name:    "outside scope forwarded",
			opts:    static.DefaultFilesOptions{RequestPath: "/site"},
			target:  "/docs/",
			status:  http.StatusOK,
			reached: "/docs/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			method := tt.method
			if method == "" {
				method = http.MethodGet
			}

			w := do(t, newHandler(tt.opts), method, tt.target)
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
			if tt.reached != "" {
				assertTerminal(t, w, tt.reached)
			}
		})
	}
}

func TestDefaultFiles_OptionsNotAliased(t *testing.T) {
	t.Parallel()

	names := []string{"home.html"}
	h := static.UseDefaultFiles(pipeline.New[ctx](), static.DefaultFilesOptions{
		FileSystem:       fixtureFS(),
		DefaultFileNames: names,
	}).Handler(echoPath)

	names[0] = "guide.txt"

	w := do(t, h, http.MethodGet, "/docs/")
	assertTerminal(t, w, "/docs/home.html")
}

func TestDefaultFileNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"default.htm", "default.html", "index.htm", "index.html"}, static.DefaultFileNames())

	names := static.DefaultFileNames()
	names[0] = "changed"
	assert.Equal(t, "default.htm", static.DefaultFileNames()[0])
}

func TestUseDefaultFiles_InvalidRequestPath(t *testing.T) {
	t.Parallel()

	b := pipeline.New[ctx]()
	requireInvalidArgument(t, func() {
		static.UseDefaultFiles(b, static.DefaultFilesOptions{RequestPath: "docs"})
	})
	assert.Zero(t, b.Len())
}
