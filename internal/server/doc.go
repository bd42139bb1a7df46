// Package server exposes the atelier HTTP API.
//
// # Endpoints
//
//	POST /api/auth/register   provision an account, returns token + profile
//	POST /api/auth/login      shared-passphrase login, returns token + profile
//	POST /api/auth/google     placeholder Google sign-in, returns token + profile
//	GET  /api/me              profile of the authenticated user
//	POST /api/ai/generate     run a prompt through the generation service
//	GET  /api/healthz         liveness check
//
// Authenticated endpoints expect "Authorization: Bearer <token>" with a
// token minted by one of the auth endpoints.
//
// Error responses carry a JSON body of the form {"detail": "..."}:
// 400 for an already-registered email, 401 for bad credentials or failed
// Google sign-in, and 503 when the generation service reports an error
// envelope.
package server
