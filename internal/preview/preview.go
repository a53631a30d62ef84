// Package preview serves the built site during development.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Server is a static file server over the output directory. Responses
// carry no-cache headers so the browser always fetches the result of
// the latest rebuild.
type Server struct {
	dir string
	log *slog.Logger
	srv *http.Server
}

func New(dir string, port int, log *slog.Logger) *Server {
	s := &Server{dir: dir, log: log}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

// Handler serves files from the output directory, refusing directory
// listings for directories without an index.html.
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(s.dir, r.URL.Path, "index.html")); os.IsNotExist(err) {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}

// Start listens until Shutdown is called. A closed-server error is
// the normal shutdown path and is not reported.
func (s *Server) Start() error {
	s.log.Info("preview server listening", "url", "http://localhost"+s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
