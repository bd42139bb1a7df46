// ABOUTME: HTTP handlers for AI generation and the authenticated profile view
// ABOUTME: POST /api/ai/generate and GET /api/me

package server

import (
	"errors"
	"net/http"

	"github.com/atelier-ai/atelier/internal/ai"
	"github.com/atelier-ai/atelier/internal/auth"
	"github.com/atelier-ai/atelier/internal/store"
)

// GenerateRequest is the JSON request body for POST /api/ai/generate.
// Mode defaults to "chat". UseSearch and ConvID are accepted for
// client compatibility but not acted on here.
type GenerateRequest struct {
	Prompt    string `json:"prompt"`
	Mode      string `json:"mode,omitempty"`
	UseSearch bool   `json:"use_search,omitempty"`
	ConvID    int64  `json:"conv_id,omitempty"`
}

// handleGenerate handles POST /api/ai/generate requests.
// The provider result always passes through the envelope gate; an error
// envelope surfaces as 503 with the composed detail message.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	env := s.ai.Generate(r.Context(), req.Prompt, req.Mode)
	if err := ai.Check(env, "AI generation"); err != nil {
		var checkErr *ai.CheckError
		if errors.As(err, &checkErr) {
			writeError(w, checkErr.StatusCode, checkErr.Detail)
			return
		}
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, env)
}

// handleMe handles GET /api/me requests for the authenticated user
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	claims := claimsFromContext(r.Context())

	account, err := s.accounts.GetAccount(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		s.logger.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, auth.Profile{
		UID:     account.UserID,
		Email:   account.UserID,
		Name:    claims.Name,
		Credits: account.Credits,
	})
}
