// ABOUTME: HTTP-level tests for the API endpoints
// ABOUTME: Uses httptest with a real SQLite store and a stubbed generation service

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ai/atelier/internal/ai"
	"github.com/atelier-ai/atelier/internal/auth"
	"github.com/atelier-ai/atelier/internal/config"
	"github.com/atelier-ai/atelier/internal/store"
)

const testDevPassword = "devpass123"

// stubAI returns a fixed envelope for every call
type stubAI struct {
	env *ai.Envelope
}

func (s *stubAI) Generate(ctx context.Context, prompt, mode string) *ai.Envelope {
	return s.env
}

func newTestServer(t *testing.T, aiSvc GenerationService) *Server {
	t.Helper()

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	codec := auth.NewTokenCodec([]byte("test-secret-key-for-jwt-signing"))
	authSvc := auth.NewService(st, codec, config.AuthConfig{
		DevPassword: testDevPassword,
		TokenTTL:    30 * 24 * time.Hour,
	})

	if aiSvc == nil {
		aiSvc = &stubAI{env: ai.Label("stub output", nil, nil)}
	}

	return New(authSvc, aiSvc, codec, st)
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) auth.Session {
	t.Helper()
	var session auth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	return session
}

func TestRegisterEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "alice@example.com",
		Password: "whatever",
		Name:     "Alice",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := decodeSession(t, rec)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.Equal(t, "Alice", session.User.Name)
	assert.Equal(t, 100.0, session.User.Credits)
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	srv := newTestServer(t, nil)

	body := RegisterRequest{Email: "bob@example.com", Password: "pw", Name: "Bob"}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "carol@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "carol@example.com", Password: "pw", Name: "Carol",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "carol@example.com", Password: testDevPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := decodeSession(t, rec)
	assert.Equal(t, "carol", session.User.Name)
}

func TestLoginEndpoint_IdenticalUnauthorizedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "dave@example.com", Password: "pw", Name: "Dave",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPass := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "dave@example.com", Password: "wrong",
	})
	noAccount := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email: "ghost@example.com", Password: testDevPassword,
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, noAccount.Code)
	assert.Equal(t, wrongPass.Body.String(), noAccount.Body.String())
}

func TestGoogleAuthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/google", "", GoogleAuthRequest{
		Token: "opaque-provider-token",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	session := decodeSession(t, rec)
	assert.Equal(t, "google.user@example.com", session.User.Email)
	assert.Equal(t, "Google User", session.User.Name)
}

func TestGenerateEndpoint_RequiresAuth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/ai/generate", "", GenerateRequest{
		Prompt: "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodPost, "/api/ai/generate", "garbage-token", GenerateRequest{
		Prompt: "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateEndpoint_Success(t *testing.T) {
	srv := newTestServer(t, &stubAI{env: ai.Label("generated text", nil, nil)})

	reg := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "eve@example.com", Password: "pw", Name: "Eve",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	token := decodeSession(t, reg).Token

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/ai/generate", token, GenerateRequest{
		Prompt: "hello", Mode: "chat",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env ai.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, ai.StatusOK, env.Status)
	assert.Equal(t, "generated text", env.Output)
	assert.NotNil(t, env.Sources)
}

func TestGenerateEndpoint_ServiceError(t *testing.T) {
	srv := newTestServer(t, &stubAI{env: &ai.Envelope{
		Status: ai.StatusError,
		Error:  ai.ErrKindServiceError,
		Output: "AI service error: connection refused",
	}})

	reg := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "frank@example.com", Password: "pw", Name: "Frank",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	token := decodeSession(t, reg).Token

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/ai/generate", token, GenerateRequest{
		Prompt: "hello",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI generation failed:")
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestMeEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	reg := doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email: "grace@example.com", Password: "pw", Name: "Grace",
	})
	require.Equal(t, http.StatusOK, reg.Code)
	token := decodeSession(t, reg).Token

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile auth.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "grace@example.com", profile.Email)
	assert.Equal(t, 100.0, profile.Credits)
}

func TestHealthzEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
