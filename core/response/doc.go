// Package response provides the small set of handler.Response builders the
// file server needs: status-carrying errors (HTTPError and the predefined
// Err* values), redirects, and streamed HTML.
//
// Returning an error from a Response hands it to the pipeline's error
// handler, which picks the status from StatusCode():
//
//	return response.Error(response.ErrNotFound)
package response
