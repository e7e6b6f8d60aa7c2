package llm

import "context"

// MockClient is a deterministic Client implementation for testing.
// It returns a fixed response or a fixed error.
type MockClient struct {
	// Response is the fixed text returned by Generate.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string

	// Calls counts how many times Generate was invoked.
	Calls int
}

// NewMockClient creates a mock client with the given fixed response.
func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response}
}

// NewMockClientWithError creates a mock client that always returns an error.
func NewMockClientWithError(err error) *MockClient {
	return &MockClient{Error: err}
}

// Generate returns the configured response or error.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	m.LastPrompt = prompt

	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// ScriptedClient returns a different response per call, in order.
// Once the script runs out it keeps returning the final entry.
type ScriptedClient struct {
	// Responses is consumed one entry per Generate call.
	Responses []string

	// Prompts records every prompt received, in call order.
	Prompts []string

	// Calls counts how many times Generate was invoked.
	Calls int
}

// Generate returns the next scripted response.
func (s *ScriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	idx := s.Calls
	s.Calls++

	if len(s.Responses) == 0 {
		return "", nil
	}
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	return s.Responses[idx], nil
}
