// ABOUTME: HTTP server wiring routes to the auth and AI services
// ABOUTME: Serializes results and maps service errors to status codes

package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/atelier-ai/atelier/internal/ai"
	"github.com/atelier-ai/atelier/internal/auth"
	"github.com/atelier-ai/atelier/internal/store"
)

// GenerationService produces normalized AI envelopes
type GenerationService interface {
	Generate(ctx context.Context, prompt, mode string) *ai.Envelope
}

// Server dispatches API requests to the underlying services
type Server struct {
	auth     *auth.Service
	ai       GenerationService
	tokens   *auth.TokenCodec
	accounts store.Store
	logger   *slog.Logger
	mux      *http.ServeMux
}

// New creates a Server with all routes registered
func New(authSvc *auth.Service, aiSvc GenerationService, tokens *auth.TokenCodec, accounts store.Store) *Server {
	s := &Server{
		auth:     authSvc,
		ai:       aiSvc,
		tokens:   tokens,
		accounts: accounts,
		logger:   slog.Default().With("component", "server"),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/auth/register", s.handleRegister)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/google", s.handleGoogleAuth)
	s.mux.Handle("/api/me", s.requireAuth(http.HandlerFunc(s.handleMe)))
	s.mux.Handle("/api/ai/generate", s.requireAuth(http.HandlerFunc(s.handleGenerate)))
	s.mux.HandleFunc("/api/healthz", s.handleHealthz)
}

// Handler returns the root handler for the API
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON serializes v as the response body with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the error body shape: {"detail": "..."}
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError writes an error body with the given status and detail message
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// decodeJSON parses the request body into v, enforcing a sane size limit
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(v)
}
