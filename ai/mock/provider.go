package mock

import (
	"github.com/poiesic/statseek/ai"
)

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock services for testing.
type MockProvider struct {
	embedder ai.Embedder
	rewriter ai.QueryRewriter
	closed   bool
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		rewriter: NewMockQueryRewriter(),
	}
}

// NewMockProviderWithServices creates a provider with custom services.
// Useful for injecting specific mock behaviors.
func NewMockProviderWithServices(embedder ai.Embedder, rewriter ai.QueryRewriter) *MockProvider {
	return &MockProvider{
		embedder: embedder,
		rewriter: rewriter,
	}
}

// Embedder returns the mock embedding service.
func (m *MockProvider) Embedder() ai.Embedder {
	return m.embedder
}

// QueryRewriter returns the mock query rewriting service.
func (m *MockProvider) QueryRewriter() ai.QueryRewriter {
	return m.rewriter
}

// Close marks the provider as closed.
func (m *MockProvider) Close() error {
	m.closed = true
	return nil
}

// IsClosed returns whether Close was called.
func (m *MockProvider) IsClosed() bool {
	return m.closed
}

// GetMockEmbedder returns the embedder as *MockEmbedder for test assertions.
// Returns nil if a custom embedder type was injected.
func (m *MockProvider) GetMockEmbedder() *MockEmbedder {
	if me, ok := m.embedder.(*MockEmbedder); ok {
		return me
	}
	return nil
}

// GetMockRewriter returns the rewriter as *MockQueryRewriter for test assertions.
// Returns nil if a custom rewriter type was injected.
func (m *MockProvider) GetMockRewriter() *MockQueryRewriter {
	if mr, ok := m.rewriter.(*MockQueryRewriter); ok {
		return mr
	}
	return nil
}
