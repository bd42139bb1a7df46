// ABOUTME: Generation service wrapping the Gemini API behind the response envelope
// ABOUTME: Classifies provider failures; raw errors never escape this package

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"syscall"

	"google.golang.org/genai"

	"github.com/atelier-ai/atelier/internal/config"
)

const defaultModel = "gemini-2.0-flash"

// generator abstracts the provider call so tests can stub it
type generator interface {
	generate(ctx context.Context, model, prompt string) (string, []Source, any, error)
}

// Service calls the upstream generation provider and normalizes every
// outcome into an Envelope. Generate never returns a raw error.
type Service struct {
	gen    generator
	model  string
	logger *slog.Logger
}

// NewService creates a generation service from the AI configuration.
// With no API key configured, the service still constructs successfully
// and every Generate call short-circuits to a service_unavailable
// envelope without touching the network.
func NewService(cfg config.AIConfig) (*Service, error) {
	s := &Service{
		model:  cfg.Model,
		logger: slog.Default().With("component", "ai"),
	}
	if s.model == "" {
		s.model = defaultModel
	}

	if cfg.APIKey == "" {
		s.logger.Warn("no AI API key configured, generation disabled")
		return s, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	s.gen = &geminiGenerator{client: client}
	return s, nil
}

// Generate runs a prompt through the provider and returns the normalized
// envelope. Mode defaults to "chat" and is recorded for observability;
// the provider call itself is mode-independent.
func (s *Service) Generate(ctx context.Context, prompt, mode string) *Envelope {
	if mode == "" {
		mode = "chat"
	}

	// Credential check happens before any network attempt
	if s.gen == nil {
		return errorEnvelope(ErrKindServiceUnavailable,
			"AI service unavailable: no API key configured")
	}

	text, sources, raw, err := s.gen.generate(ctx, s.model, prompt)
	if err != nil {
		s.logger.Error("generation failed", "mode", mode, "error", err)
		return classifyError(err)
	}

	s.logger.Debug("generation succeeded", "mode", mode, "output_len", len(text))
	return Label(text, sources, raw)
}

// classifyError maps a provider error to an error envelope.
// Transport failures become service_error; everything else unknown_error.
func classifyError(err error) *Envelope {
	if isTransportError(err) {
		return errorEnvelope(ErrKindServiceError, "AI service error: "+err.Error())
	}
	return errorEnvelope(ErrKindUnknown, "unexpected AI service failure: "+err.Error())
}

// isTransportError reports whether the error is a connection-level
// failure: DNS resolution, refused or reset connections, timeouts.
func isTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET)
}

// geminiGenerator is the real provider implementation
type geminiGenerator struct {
	client *genai.Client
}

func (g *geminiGenerator) generate(ctx context.Context, model, prompt string) (string, []Source, any, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", nil, nil, err
	}

	if len(resp.Candidates) == 0 {
		return "", nil, nil, fmt.Errorf("no candidates returned")
	}

	return resp.Text(), extractSources(resp), resp, nil
}

// extractSources pulls web citations out of the grounding metadata, when present
func extractSources(resp *genai.GenerateContentResponse) []Source {
	var sources []Source
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				sources = append(sources, Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
			}
		}
	}
	return sources
}
