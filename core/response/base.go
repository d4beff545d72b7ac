package response

import (
	"io"
	"net/http"

	"github.com/dmitrymomot/fileserver/core/handler"
)

// HTML creates a text/html response with the given status.
// The body is produced by render so large pages are streamed.
func HTML(status int, render func(w io.Writer) error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return nil
		}
		return render(w)
	}
}
