// ABOUTME: Authentication service orchestrating registration, login, and Google sign-in
// ABOUTME: Development flow using a shared passphrase instead of per-account credentials

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atelier-ai/atelier/internal/config"
	"github.com/atelier-ai/atelier/internal/store"
)

// Service errors
var (
	// ErrAlreadyRegistered means the email already maps to an account
	ErrAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown account and a wrong
	// password. The two cases intentionally share one error so responses
	// don't reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrGoogleAuthFailed is the single error kind surfaced for any
	// failure during Google sign-in
	ErrGoogleAuthFailed = errors.New("google authentication failed")
)

// Placeholder identity resolved for every Google sign-in. Real provider
// token verification has to replace this before production use.
const (
	googleUserID = "google.user@example.com"
	googleName   = "Google User"
)

// Profile is the user view returned alongside a minted token
type Profile struct {
	UID     string  `json:"uid"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
}

// Session is the result of a successful authentication call
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Service orchestrates account provisioning and token issuance.
// It holds no mutable state; all per-identity coordination is delegated
// to the store's uniqueness constraint.
type Service struct {
	accounts    store.Store
	tokens      *TokenCodec
	devPassword []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewService creates an authentication service backed by the given
// account store and token codec
func NewService(accounts store.Store, tokens *TokenCodec, cfg config.AuthConfig) *Service {
	return &Service{
		accounts:    accounts,
		tokens:      tokens,
		devPassword: []byte(cfg.DevPassword),
		tokenTTL:    cfg.TokenTTL,
		logger:      slog.Default().With("component", "auth"),
	}
}

// Register provisions a new account with the default credit grant and
// returns a session for it. The password is accepted but not stored or
// verified anywhere; this is the development flow.
// Returns ErrAlreadyRegistered if the email already has an account.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	account := &store.Account{
		UserID:  email,
		Credits: store.DefaultCredits,
		Role:    store.DefaultRole,
	}

	// Insert and catch the conflict instead of find-then-create, so a
	// concurrent registration under the same email can't slip through.
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateAccount) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Info("registered account", "email", email)
	return s.mintSession(email, name, account.Credits)
}

// Login authenticates against the shared development passphrase and
// returns a session. An unknown email and a wrong password both fail
// with ErrInvalidCredentials. When the account has no stored display
// name, one is derived from the local part of the email.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.accounts.GetAccount(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(password), s.devPassword) != 1 {
		return nil, ErrInvalidCredentials
	}

	return s.mintSession(email, localPart(email), account.Credits)
}

// GoogleLogin performs the Google sign-in placeholder flow: the provider
// token is not verified, and a fixed placeholder identity is resolved.
// The account is created on first sign-in (find-or-create); a duplicate
// conflict from a concurrent create falls back to the existing account.
// Every failure surfaces as ErrGoogleAuthFailed; the underlying cause is
// logged so store and provider failures stay distinguishable internally.
func (s *Service) GoogleLogin(ctx context.Context, providerToken string) (*Session, error) {
	account, err := s.accounts.GetAccount(ctx, googleUserID)
	if errors.Is(err, store.ErrNotFound) {
		account = &store.Account{
			UserID:  googleUserID,
			Credits: store.DefaultCredits,
			Role:    store.DefaultRole,
		}
		err = s.accounts.CreateAccount(ctx, account)
		if errors.Is(err, store.ErrDuplicateAccount) {
			// Concurrent sign-in won the insert; use its row
			account, err = s.accounts.GetAccount(ctx, googleUserID)
		}
	}
	if err != nil {
		s.logger.Error("google sign-in store failure", "error", err)
		return nil, ErrGoogleAuthFailed
	}

	session, err := s.mintSession(googleUserID, googleName, account.Credits)
	if err != nil {
		s.logger.Error("google sign-in token failure", "error", err)
		return nil, ErrGoogleAuthFailed
	}

	return session, nil
}

// mintSession generates a token bound to the identity and wraps it with
// the profile view
func (s *Service) mintSession(email, name string, credits float64) (*Session, error) {
	token, err := s.tokens.Generate(email, name, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &Session{
		Token: token,
		User: Profile{
			UID:     email,
			Email:   email,
			Name:    name,
			Credits: credits,
		},
	}, nil
}

// localPart derives a display name from the part of the email before "@"
func localPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
