package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryRewriter turns a free-text user question into a concise search phrase
// suited to indicator retrieval. It is an auxiliary aid for callers; the
// ranking core never depends on it.
// Implementations must be thread-safe for concurrent use.
type QueryRewriter interface {
	// Rewrite reformulates the query for retrieval. The result should name
	// the statistical concepts the user is after, without filler words.
	// Returns the original query unchanged when no useful rewrite exists.
	Rewrite(ctx context.Context, query string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and QueryRewriter instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryRewriter returns the query rewriting service.
	// The returned QueryRewriter is safe for concurrent use.
	QueryRewriter() QueryRewriter

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
