// Package ai wraps the upstream generation provider and normalizes every
// outcome into a stable success/error envelope.
//
// Service.Generate never returns a Go error. Results are classified:
//
//   - success: status "ok" with the output text, citations (empty slice
//     when none), and the raw provider response
//   - no API key configured: status "error", kind "service_unavailable",
//     short-circuited before any network I/O
//   - transport failure (DNS, refused connection, timeout): status
//     "error", kind "service_error"
//   - anything else: status "error", kind "unknown_error"
//
// Callers gate on the envelope with Check, which converts an error
// envelope into a CheckError carrying HTTP status 503 and a composed
// "<operation> failed: <message>" detail:
//
//	env := svc.Generate(ctx, prompt, "chat")
//	if err := ai.Check(env, "Chat generation"); err != nil {
//	    return err
//	}
//
// No retries are attempted here; resilience layers belong above this
// package without changing the envelope contract.
package ai
