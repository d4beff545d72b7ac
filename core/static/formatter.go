package static

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrymomot/fileserver/core/response"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Index of {{.Path}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { padding: .25em 1em; text-align: left; }
td.size { text-align: right; }
</style>
</head>
<body>
<h1>Index of{{range .Crumbs}} <a href="{{.Href}}">{{.Name}}</a>{{end}}</h1>
<table>
<thead><tr><th>Name</th><th>Size</th><th>Last Modified</th></tr></thead>
<tbody>
{{- range .Entries}}
<tr><td><a href="{{.Href}}">{{.Name}}</a></td><td class="size">{{.Size}}</td><td>{{.Modified}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type listingCrumb struct {
	Name string
	Href string
}

type listingEntry struct {
	Name     string
	Href     string
	Size     string
	Modified string
}

type listingPage struct {
	Path    string
	Crumbs  []listingCrumb
	Entries []listingEntry
}

// HTMLFormatter renders listings as an HTML table with human readable sizes.
type HTMLFormatter struct{}

// Format implements DirectoryFormatter.
func (HTMLFormatter) Format(w http.ResponseWriter, r *http.Request, requestPath string, entries []fs.FileInfo) error {
	page := listingPage{
		Path:    requestPath,
		Crumbs:  breadcrumbs(requestPath),
		Entries: make([]listingEntry, 0, len(entries)),
	}

	for _, e := range entries {
		entry := listingEntry{
			Name:     e.Name(),
			Href:     "./" + url.PathEscape(e.Name()),
			Modified: e.ModTime().UTC().Format(time.RFC1123),
		}
		if e.IsDir() {
			entry.Name += "/"
			entry.Href += "/"
			entry.Size = "-"
		} else {
			entry.Size = humanize.IBytes(uint64(max(e.Size(), 0)))
		}
		page.Entries = append(page.Entries, entry)
	}

	return response.HTML(http.StatusOK, func(out io.Writer) error {
		return listingTemplate.Execute(out, page)
	})(w, r)
}

// breadcrumbs links every segment of the directory path, starting at the root.
func breadcrumbs(requestPath string) []listingCrumb {
	crumbs := []listingCrumb{{Name: "/", Href: "/"}}

	href := "/"
	for _, seg := range strings.Split(strings.Trim(requestPath, "/"), "/") {
		if seg == "" {
			continue
		}
		href += url.PathEscape(seg) + "/"
		crumbs = append(crumbs, listingCrumb{Name: seg + "/", Href: href})
	}

	return crumbs
}
