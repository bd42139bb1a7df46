// Package auth provides authentication for the atelier backend.
//
// # Development Flow
//
// This is explicitly a development stand-in, not a production credential
// system:
//
//   - Register accepts any password and never stores it. It provisions an
//     account with a 100.0 credit grant and the "member" role.
//   - Login compares the password against a single process-wide passphrase
//     from the configuration, not a per-account secret.
//   - GoogleLogin does not verify the provider token; it resolves a fixed
//     placeholder identity and creates its account on first use.
//
// Login returns the same error for an unknown email and a wrong password
// so responses do not reveal which check failed.
//
// # Session Tokens
//
// Successful calls mint an HS256-signed JWT carrying the identity, display
// name, and a 30-day expiry (configurable). Tokens are stateless and not
// revocable; verification checks only signature and expiry:
//
//	codec := auth.NewTokenCodec(secret)
//	token, err := codec.Generate("a@example.com", "Alice", ttl)
//	claims, err := codec.Verify(token)
//
// Identities (email addresses) are treated as exact-match, case-sensitive
// keys. No trimming or lowercasing is performed.
package auth
