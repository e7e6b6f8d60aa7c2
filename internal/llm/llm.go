// Package llm provides the text-generation backend boundary. It defines a
// provider-agnostic client interface with a concrete OpenAI implementation
// and deterministic mocks for testing. Backend failures are transport-level
// and never retried here; retry policy lives with the callers that validate
// generated output.
package llm

import (
	"context"
	"errors"
)

var (
	ErrBackend       = errors.New("backend request failed")
	ErrInvalidConfig = errors.New("invalid backend configuration")
)

// Client defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type Client interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration options for backend providers.
type Config struct {
	// Model specifies the model identifier (e.g., "gpt-4o", "gpt-4o-mini")
	Model string

	// Temperature controls randomness (0.0 = deterministic, 2.0 = very random)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string

	// Timeout bounds a single backend call, in seconds (0 = default)
	Timeout int
}

// DefaultConfig returns sensible defaults for commit message generation.
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   1000,
		Timeout:     45,
	}
}
