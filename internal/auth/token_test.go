// ABOUTME: Unit tests for session token generation and verification
// ABOUTME: Tests valid tokens, invalid tokens, and expired tokens

package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret-key-for-jwt-signing"))

	token, err := codec.Generate("a@example.com", "Alice", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != "a@example.com" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "a@example.com")
	}
	if claims.Email != "a@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "a@example.com")
	}
	if claims.Name != "Alice" {
		t.Errorf("Name = %q, want %q", claims.Name, "Alice")
	}

	wantExpiry := time.Now().Add(30 * 24 * time.Hour)
	if claims.ExpiresAt.Before(wantExpiry.Add(-time.Minute)) || claims.ExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want about %v", claims.ExpiresAt, wantExpiry)
	}
}

func TestTokenCodec_InvalidToken(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret-key-for-jwt-signing"))

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenCodec([]byte("different-secret"))
				token, _ := other.Generate("a@example.com", "Alice", time.Hour)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			if err == nil {
				t.Error("Verify() should have returned an error")
			}
			if errors.Is(err, ErrExpiredToken) {
				t.Errorf("Verify() error = %v, should not be ErrExpiredToken", err)
			}
		})
	}
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret-key-for-jwt-signing"))

	// Generate a token that expired 1 hour ago
	token, err := codec.Generate("a@example.com", "Alice", -time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = codec.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestTokenCodec_MissingSubject(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret-key-for-jwt-signing"))

	token, err := codec.Generate("", "Alice", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = codec.Verify(token)
	if !errors.Is(err, ErrMissingClaim) {
		t.Errorf("Verify() error = %v, want ErrMissingClaim", err)
	}
}
