package static_test

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fileserver/core/handler"
	"github.com/dmitrymomot/fileserver/core/pipeline"
	"github.com/dmitrymomot/fileserver/core/static"
)

type ctx = *pipeline.Context

var modTime = time.Date(2024, time.March, 4, 5, 6, 7, 0, time.UTC)

// fixtureFS is a small site:
//
//	index.html
//	app.js
//	notes.zzq          (unknown type)
//	big.bin            (2 KiB)
//	docs/index.html
//	docs/guide.txt
//	gallery/cat.png    (no default document)
//	gallery/<b>.txt
//	gallery/sub/
//	odd/index.html/    (directory named like a default document)
func fixtureFS() http.FileSystem {
	return http.FS(fstest.MapFS{
		"index.html":       {Data: []byte("<h1>home</h1>"), ModTime: modTime},
		"app.js":           {Data: []byte("console.log(1)"), ModTime: modTime},
		"notes.zzq":        {Data: []byte("???"), ModTime: modTime},
		"big.bin":          {Data: []byte(strings.Repeat("x", 2048)), ModTime: modTime},
		"docs/index.html":  {Data: []byte("docs index"), ModTime: modTime},
		"docs/home.html":   {Data: []byte("docs home"), ModTime: modTime},
		"docs/guide.txt":   {Data: []byte("read me"), ModTime: modTime},
		"gallery/cat.png":  {Data: []byte("png"), ModTime: modTime},
		"gallery/<b>.txt":  {Data: []byte("bold"), ModTime: modTime},
		"gallery/sub":      {Mode: fs.ModeDir | 0o755, ModTime: modTime},
		"odd/index.html":   {Mode: fs.ModeDir | 0o755, ModTime: modTime},
		"odd/readme.txt":   {Data: []byte("odd"), ModTime: modTime},
		"assets/index.htm": {Data: []byte("assets index"), ModTime: modTime},
		"assets/site.css":  {Data: []byte("body{}"), ModTime: modTime},
	})
}

// echoPath is a terminal that reports the path it was reached with.
func echoPath(c ctx) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-Terminal", "reached")
		_, err := w.Write([]byte(r.URL.Path))
		return err
	}
}

func do(t *testing.T, h http.Handler, method, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	require.Zero(t, len(headers)%2, "headers must be key/value pairs")

	req := httptest.NewRequest(method, target, nil)
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func stageNames(b *pipeline.Builder[ctx]) []string {
	stages := b.Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}

func assertTerminal(t *testing.T, w *httptest.ResponseRecorder, path string) {
	t.Helper()
	assert.Equal(t, "reached", w.Header().Get("X-Terminal"))
	assert.Equal(t, path, w.Body.String())
}

// requireInvalidArgument fails unless fn panics with an error wrapping ErrInvalidArgument.
func requireInvalidArgument(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value must be an error, got %T", r)
		assert.ErrorIs(t, err, static.ErrInvalidArgument)
	}()

	fn()
}
