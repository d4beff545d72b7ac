package static

import (
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// normalizeRequestPath validates a request path scope and strips the trailing slash.
// The root ("" or "/") normalizes to "".
func normalizeRequestPath(p string) (string, error) {
	if p == "" || p == "/" {
		return "", nil
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: request path '%s' must start with '/'", ErrInvalidArgument, p)
	}
	return strings.TrimRight(p, "/"), nil
}

// mustRequestPath is normalizeRequestPath for registration helpers, which panic on bad input.
func mustRequestPath(p string) string {
	n, err := normalizeRequestPath(p)
	if err != nil {
		panic(err)
	}
	return n
}

// matchPath reports whether urlPath lies under scope on a segment boundary
// and returns the remainder, always starting with '/'.
// Dot segments are resolved first, so a path that climbs out of scope does
// not match it. With forDirectory set the path is treated as if it ended in
// a slash.
func matchPath(urlPath, scope string, forDirectory bool) (string, bool) {
	p := cleanURLPath(urlPath)
	if forDirectory && !strings.HasSuffix(p, "/") {
		p += "/"
	}

	if scope == "" {
		return p, true
	}
	if p == scope {
		return "/", true
	}
	if strings.HasPrefix(p, scope+"/") {
		return p[len(scope):], true
	}
	return "", false
}

// cleanURLPath is path.Clean that keeps a trailing slash.
func cleanURLPath(p string) string {
	if p == "" {
		return "/"
	}
	c := path.Clean("/" + p)
	if c != "/" && strings.HasSuffix(p, "/") {
		c += "/"
	}
	return c
}

func isGetOrHead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// open opens the cleaned name; http.FS rejects paths with a trailing slash.
func open(fsys http.FileSystem, name string) (http.File, error) {
	return fsys.Open(path.Clean("/" + name))
}

// stat opens name only long enough to read its FileInfo.
func stat(fsys http.FileSystem, name string) (fs.FileInfo, error) {
	f, err := open(fsys, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return f.Stat()
}

func isDir(fsys http.FileSystem, name string) bool {
	info, err := stat(fsys, name)
	return err == nil && info.IsDir()
}

// slashRedirectTarget returns the request URI with a trailing slash appended to the path.
func slashRedirectTarget(u *url.URL) string {
	target := url.URL{Path: u.Path + "/", RawQuery: u.RawQuery}
	return target.RequestURI()
}

func fileSystemOrDefault(fsys http.FileSystem) http.FileSystem {
	if fsys == nil {
		return http.Dir(".")
	}
	return fsys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
