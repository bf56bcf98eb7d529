// Package server exposes the root-finding tools over HTTP and runs guided
// tutorials over WebSocket.
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Tutorial session:   GET  /session (WebSocket)
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/config"
	"github.com/njchilds90/polyroots/internal/logging"
)

// Server serves the tool API and tutorial sessions.
type Server struct {
	cfg    config.ServerConfig
	opts   []polyroots.Option
	logger *slog.Logger
	mux    *http.ServeMux

	mu       sync.Mutex
	sessions map[string]time.Time
}

// New builds a server from cfg. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		cfg:      cfg.Server,
		opts:     append(cfg.EngineOptions(), polyroots.WithLogger(logger)),
		logger:   logger,
		mux:      http.NewServeMux(),
		sessions: make(map[string]time.Time),
	}
	s.mux.HandleFunc("/tool", s.recoverer("/tool", s.handleTool))
	s.mux.HandleFunc("/schema", s.handleSchema)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/session", s.recoverer("/session", s.handleSession))
	return s
}

// Handler returns the routing handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       s.cfg.IdleTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("polyroots server listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errgo.Notef(err, "server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("polyroots server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errgo.Notef(err, "shutdown failed")
		}
		return nil
	}
}

func (s *Server) recoverer(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic",
					slog.String("route", route),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req polyroots.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	start := time.Now()
	resp := polyroots.HandleToolCall(req, s.opts...)
	s.logger.Debug("tool call",
		slog.String("tool", req.Tool),
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("failed", resp.Error != ""))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, polyroots.ToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.ActiveSessions(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// ActiveSessions counts open tutorial connections.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) register(id string) {
	s.mu.Lock()
	s.sessions[id] = time.Now()
	s.mu.Unlock()
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
