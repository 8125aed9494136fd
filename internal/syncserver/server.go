// Package syncserver is the HTTP backup service behind the remote client.
// Each bearer token owns one backup document.
package syncserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mmcdole/showlist/internal/codec"
	"github.com/mmcdole/showlist/internal/store"
	"github.com/mmcdole/showlist/internal/validation"
)

const maxBackupBytes = 8 << 20

// Server serves backup documents stored in a store.Store
type Server struct {
	store  *store.Store
	tokens map[string]struct{}
	router chi.Router
	logger *slog.Logger
}

// NewServer creates a backup server. An empty token list accepts any
// non-empty bearer token.
func NewServer(st *store.Store, tokens []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:  st,
		tokens: make(map[string]struct{}, len(tokens)),
		router: chi.NewRouter(),
		logger: logger,
	}
	for _, t := range tokens {
		if t != "" {
			s.tokens[t] = struct{}{}
		}
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/backup", s.handleGetBackup)
		r.Put("/backup", s.handlePutBackup)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"}, s.logger)
}

func (s *Server) handleGetBackup(w http.ResponseWriter, r *http.Request) {
	ns := namespace(r.Context())

	shows, ok, err := s.store.GetShows(ns)
	if err != nil {
		s.logger.Error("failed to read backup", "namespace", ns, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read backup", s.logger)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No backup stored", s.logger)
		return
	}

	if ts, ok := s.store.UpdatedAt(ns); ok {
		w.Header().Set("Last-Modified", ts.UTC().Format(http.TimeFormat))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := codec.EncodeBackup(w, shows); err != nil {
		s.logger.Error("failed to write backup", "error", err)
	}
}

func (s *Server) handlePutBackup(w http.ResponseWriter, r *http.Request) {
	ns := namespace(r.Context())

	shows, err := codec.DecodeBackup(http.MaxBytesReader(w, r.Body, maxBackupBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Backup too large", s.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid backup document", s.logger)
		return
	}

	if err := validation.ValidateBackup(shows); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), s.logger)
		return
	}

	if err := s.store.PutShows(ns, shows); err != nil {
		s.logger.Error("failed to store backup", "namespace", ns, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store backup", s.logger)
		return
	}

	s.logger.Info("backup stored", "namespace", ns, "count", len(shows))
	w.WriteHeader(http.StatusNoContent)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("backup server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down backup server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message}, logger)
}
