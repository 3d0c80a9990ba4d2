package httpserver

import (
	"net/http"
	"time"
)

// New builds the ledger's HTTP server. Timeouts are sized for small JSON
// bodies and store-bound handlers: ingesting a full batch stays well under
// the write timeout, and nothing streams.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
