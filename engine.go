// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package statseek

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/statseek/ai"
	"github.com/poiesic/statseek/ai/openai"
	"github.com/poiesic/statseek/index"
	"github.com/poiesic/statseek/ingest"
	"github.com/poiesic/statseek/reembed"
	"github.com/poiesic/statseek/search"
	"github.com/poiesic/statseek/storage"
	"github.com/poiesic/statseek/storage/badger"
)

// Engine bundles the catalog store, lexical indices, and AI services into
// one handle. It is the entry point for embedding catalogs and searching them.
type Engine struct {
	backend  *badger.Backend
	catalog  storage.CatalogRepository
	provider ai.AIProvider
	bm25     *index.BM25
	tfidf    *index.TFIDF
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
	logger   *slog.Logger
}

// WithAIConfig sets the configuration used to build the default AI provider.
// Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from configuration. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the catalog store in memory, discarding all data on
// close. Intended for tests and experiments.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithEngineLogger sets a custom logger.
// Default is slog.Default().
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens the catalog store at filePath and builds the lexical indices
// from its current contents.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	e := &Engine{
		backend:  backend,
		catalog:  catalog,
		provider: provider,
		logger:   options.logger,
	}

	if err := e.RefreshIndexes(context.Background()); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// RefreshIndexes rebuilds the BM25 and TF-IDF indices from the catalog.
// Call after ingesting records into an already open engine.
func (e *Engine) RefreshIndexes(ctx context.Context) error {
	records, err := e.catalog.GetAllIndicators(ctx)
	if err != nil {
		return err
	}

	docs := make([]index.Document, len(records))
	for i, record := range records {
		docs[i] = index.Document{Id: record.Id, Text: record.SearchableText()}
	}

	e.bm25 = index.NewBM25(docs)
	e.tfidf = index.NewTFIDF(docs)
	e.logger.Debug("rebuilt lexical indices", "records", len(docs))
	return nil
}

// Catalog returns the underlying catalog repository.
func (e *Engine) Catalog() storage.CatalogRepository {
	return e.catalog
}

// NewSearcher creates a searcher over the engine's catalog and indices.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.catalog, e.bm25, e.tfidf, e.provider, opts...)
}

// NewIngestPipeline creates an ingestion pipeline writing into the
// engine's catalog. Call RefreshIndexes once ingestion has finished.
func (e *Engine) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(e.catalog, e.provider, opts...)
}

// NewReembedder creates a reembedder over the engine's catalog.
// progress: where to write progress output (typically os.Stderr)
func (e *Engine) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(e.catalog, e.provider.Embedder(), config, progress)
}

// RewriteQuery reformulates a natural-language question into a search
// phrase using the configured rewriter model.
func (e *Engine) RewriteQuery(ctx context.Context, query string) (string, error) {
	return e.provider.QueryRewriter().Rewrite(ctx, query)
}

// Close releases the AI provider and the catalog store.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.catalog.Close(); err != nil {
		e.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
