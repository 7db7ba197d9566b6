package core

import "net/http"

// Response renders itself onto an http.ResponseWriter. Handlers build a
// Response value and return it; rendering is the last step so a handler
// can still switch to an error response before any bytes are written.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}
