package static

import (
	"maps"
	"mime"
	"path"
	"strings"
)

// ContentTypeProvider maps a file name to its Content-Type.
type ContentTypeProvider interface {
	ContentType(name string) (string, bool)
}

// ExtensionContentTypeProvider resolves content types by file extension.
// Mappings take precedence over the system MIME table.
type ExtensionContentTypeProvider struct {
	// Mappings is keyed by lowercase extension including the dot (".css").
	Mappings map[string]string
}

// NewExtensionContentTypeProvider returns a provider preloaded with web
// types that system MIME tables often miss or get wrong.
func NewExtensionContentTypeProvider() *ExtensionContentTypeProvider {
	return &ExtensionContentTypeProvider{Mappings: maps.Clone(webTypes)}
}

var webTypes = map[string]string{
	".css":         "text/css; charset=utf-8",
	".htm":         "text/html; charset=utf-8",
	".html":        "text/html; charset=utf-8",
	".js":          "text/javascript; charset=utf-8",
	".mjs":         "text/javascript; charset=utf-8",
	".json":        "application/json",
	".map":         "application/json",
	".webmanifest": "application/manifest+json",
	".svg":         "image/svg+xml",
	".wasm":        "application/wasm",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".txt":         "text/plain; charset=utf-8",
	".md":          "text/markdown; charset=utf-8",
}

// ContentType implements ContentTypeProvider.
func (p *ExtensionContentTypeProvider) ContentType(name string) (string, bool) {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return "", false
	}
	if ct, ok := p.Mappings[ext]; ok {
		return ct, true
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct, true
	}
	return "", false
}
