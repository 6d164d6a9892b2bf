// Package server exposes the RAM service over HTTP: a JSON API under /api
// and a websocket at /api/live for solve-as-you-edit clients.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/panyam/ramtool/services"
)

const maxBodyBytes = 4 << 20

type Server struct {
	Address string
	svc     *services.RamService

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewServer(address string, svc *services.RamService) *Server {
	return &Server{
		Address:      address,
		svc:          svc,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Handler returns the full route tree wrapped in logging and recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	api := &apiHandler{svc: s.svc}
	api.register(mux)
	mux.Handle("GET /api/live", &liveHandler{svc: s.svc})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/api/health", http.StatusFound)
			return
		}
		writeDetail(w, http.StatusNotFound, "Not found.")
	})
	return withRequestLogging(withRecovery(mux))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Address,
		Handler:      s.Handler(),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Server shutdown error", "error", err)
		return err
	}
	return nil
}
