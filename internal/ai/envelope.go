// ABOUTME: Response envelope and error taxonomy for the upstream AI service
// ABOUTME: Normalizes provider results into a stable success/error shape

package ai

import (
	"fmt"
	"net/http"
)

// Envelope status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Error kinds carried by error envelopes
const (
	// ErrKindServiceUnavailable means no provider credential is configured;
	// detected before any network attempt
	ErrKindServiceUnavailable = "service_unavailable"

	// ErrKindServiceError means the provider call failed at the transport
	// level (DNS, refused connection, timeout)
	ErrKindServiceError = "service_error"

	// ErrKindUnknown covers any other provider failure
	ErrKindUnknown = "unknown_error"
)

// Source is a citation accompanying generated output
type Source struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

// Envelope is the normalized wrapper around a provider response.
// When Status is "error", Output holds a human-readable message and Error
// holds one of the error kinds above; on success Error is empty.
type Envelope struct {
	Status  string   `json:"status"`
	Output  string   `json:"output"`
	Error   string   `json:"error,omitempty"`
	Sources []Source `json:"sources"`
	Raw     any      `json:"raw,omitempty"`
}

// Label wraps a successful provider payload as an ok envelope.
// Sources default to an empty slice so the JSON field is always present.
func Label(text string, sources []Source, raw any) *Envelope {
	if sources == nil {
		sources = []Source{}
	}
	return &Envelope{
		Status:  StatusOK,
		Output:  text,
		Sources: sources,
		Raw:     raw,
	}
}

// errorEnvelope builds an error envelope with the given kind and message
func errorEnvelope(kind, message string) *Envelope {
	return &Envelope{
		Status:  StatusError,
		Output:  message,
		Error:   kind,
		Sources: []Source{},
	}
}

// CheckError is the user-facing failure raised for an error envelope
type CheckError struct {
	StatusCode int
	Detail     string
}

func (e *CheckError) Error() string {
	return e.Detail
}

// Check inspects an envelope and converts an error status into a
// CheckError carrying HTTP status 503 and a detail of the form
// "<operation> failed: <output>". On success the envelope passes
// through untouched and Check returns nil.
func Check(env *Envelope, operation string) error {
	if env.Status != StatusError {
		return nil
	}

	msg := env.Output
	if msg == "" {
		msg = "AI service unavailable"
	}

	return &CheckError{
		StatusCode: http.StatusServiceUnavailable,
		Detail:     fmt.Sprintf("%s failed: %s", operation, msg),
	}
}
