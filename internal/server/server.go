// Package server exposes update checks over HTTP.
//
// Routes:
//
//	POST /getUpdateInfo  run an update check
//	GET  /healthz        liveness probe
//
// Every failure is answered with {"error": "..."} and the status carried by
// the error. Internal details only reach the log.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/t1nkr/releasecache/pkg/errors"
	"github.com/t1nkr/releasecache/pkg/updatecheck"
)

// Checker runs update checks.
type Checker interface {
	Check(ctx context.Context, q updatecheck.Query) (*updatecheck.Result, error)
}

// Server routes HTTP requests to a Checker.
type Server struct {
	checker Checker
	logger  *log.Logger
	router  chi.Router
}

// New creates a Server.
func New(checker Checker, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{checker: checker, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.Post("/getUpdateInfo", s.handleGetUpdateInfo)
	r.Get("/healthz", s.handleHealth)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found."})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed."})
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("graceful shutdown failed", "err", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleGetUpdateInfo(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("update check requested", "slug", q.Slug, "currentVersion", q.CurrentVersion, "force", q.Force)

	res, err := s.checker.Check(r.Context(), q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError logs err and answers with its status and caller message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	e := apperrors.Unexpected(err)
	apperrors.Report(s.logger, e)
	s.logger.Info("information returned", "status", e.Status, "message", e.Message)
	writeJSON(w, apperrors.StatusCode(e), errorBody{Error: apperrors.UserMessage(e)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
