// ABOUTME: HTTP handlers for the authentication endpoints
// ABOUTME: POST /api/auth/register, /api/auth/login, /api/auth/google

package server

import (
	"errors"
	"net/http"

	"github.com/atelier-ai/atelier/internal/auth"
)

// RegisterRequest is the JSON request body for POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the JSON request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthRequest is the JSON request body for POST /api/auth/google
type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// handleRegister handles POST /api/auth/register requests.
// Responds 400 when the email already has an account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}

	session, err := s.auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrAlreadyRegistered) {
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// handleLogin handles POST /api/auth/login requests.
// An unknown email and a wrong password get the same 401 body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// handleGoogleAuth handles POST /api/auth/google requests.
// Any failure in the flow responds 401 with a generic message.
func (s *Server) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req GoogleAuthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	session, err := s.auth.GoogleLogin(r.Context(), req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Google authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}
