package mock

import (
	"context"
)

// MockQueryRewriter is a test double for ai.QueryRewriter.
// It allows custom behavior injection via function fields.
type MockQueryRewriter struct {
	// RewriteFunc is called by Rewrite if set.
	// If nil, the original query is returned unchanged.
	RewriteFunc func(ctx context.Context, query string) (string, error)

	callCount int
}

// NewMockQueryRewriter creates a mock rewriter that echoes queries back.
func NewMockQueryRewriter() *MockQueryRewriter {
	return &MockQueryRewriter{}
}

// Rewrite returns the query unchanged unless RewriteFunc is set.
func (m *MockQueryRewriter) Rewrite(ctx context.Context, query string) (string, error) {
	m.callCount++

	if m.RewriteFunc != nil {
		return m.RewriteFunc(ctx, query)
	}

	return query, nil
}

// CallCount returns the number of times Rewrite was called.
func (m *MockQueryRewriter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockQueryRewriter) Reset() {
	m.callCount = 0
	m.RewriteFunc = nil
}
