package response

import (
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
)

// Redirect creates a 302 Found (temporary redirect) response.
func Redirect(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusFound)
		return nil
	}
}

// RedirectPermanent creates a 301 Moved Permanently response.
// Directory stages use it to append the trailing slash so relative links keep working.
func RedirectPermanent(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Location", url)
		w.WriteHeader(http.StatusMovedPermanently)
		return nil
	}
}
