package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to this service: proof
// verification can take a few seconds, room syncs wait on receipt polling,
// so the write timeout stays generous while header reads fail fast.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
}
