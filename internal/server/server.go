package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
	closed     bool
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// newHTTPServer builds a configured *http.Server. There is no write timeout:
// /ws connections stay open for the life of the browser tab.
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// NormalizeAddr accepts "8080", ":8080" or "host:8080". Empty input selects ":8080".
func NormalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	switch {
	case port == "":
		return ":8080"
	case strings.Contains(port, ":"):
		return port
	default:
		return ":" + port
	}
}

// Run starts the HTTP server on the given port. It returns nil after Shutdown,
// including when Shutdown ran before Run.
func (s *Server) Run(port string, handler http.Handler) error {
	srv, ok := s.set(newHTTPServer(NormalizeAddr(port), handler))
	if !ok {
		return nil
	}
	return ignoreClosed(srv.ListenAndServe())
}

// Serve accepts connections on ln. Useful for tests.
func (s *Server) Serve(ln net.Listener, handler http.Handler) error {
	srv, ok := s.set(newHTTPServer(ln.Addr().String(), handler))
	if !ok {
		return ln.Close()
	}
	return ignoreClosed(srv.Serve(ln))
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.closed = true
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// set records srv unless Shutdown already ran.
func (s *Server) set(srv *http.Server) (*http.Server, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	s.httpServer = srv
	return srv, true
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
