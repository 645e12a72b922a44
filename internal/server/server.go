package server

import (
	"net/http"
	"time"
)

// New returns an *http.Server with read, write and idle timeouts. The write
// timeout leaves room for a full spreadsheet round trip.
func New(addr string, handler http.Handler, submitTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      submitTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
