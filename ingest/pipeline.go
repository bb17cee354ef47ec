package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/statseek/ai"
	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/reembed"
	"github.com/poiesic/statseek/storage"
)

// defaultBatchSize is the number of records sent to the embedder per call.
const defaultBatchSize = 32

// Pipeline loads indicator records into the catalog and embeds them.
// Records are stored before embedding, so a failed embedding batch leaves
// its indicators keyword-searchable rather than absent.
type Pipeline struct {
	catalog   storage.CatalogRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are embedded per call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	catalog storage.CatalogRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		catalog:   catalog,
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Ingest stores the records and embeds them in concurrent batches.
// Storage failures abort the ingest; embedding failures are logged and the
// affected batch is left without vectors. Returns the number of records
// that received embeddings.
func (p *Pipeline) Ingest(ctx context.Context, records ...*core.IndicatorRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	for _, record := range records {
		if err := core.ValidateIndicator(record); err != nil {
			return 0, err
		}
	}

	if err := p.catalog.AddIndicators(ctx, records...); err != nil {
		return 0, err
	}
	p.logger.Info("stored indicator records", "records", len(records))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		embedded int
	)
	for start := 0; start < len(records); start += p.batchSize {
		end := min(start+p.batchSize, len(records))
		batch := records[start:end]

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			n, err := p.embedBatch(ctx, batch)
			if err != nil {
				p.logger.Warn("embedding batch failed, records remain keyword-searchable",
					"records", len(batch), "err", err)
				return
			}
			mu.Lock()
			embedded += n
			mu.Unlock()
		}); err != nil {
			wg.Done()
			p.logger.Error("error submitting embedding batch", "err", err)
		}
	}
	wg.Wait()

	p.logger.Info("ingest complete", "records", len(records), "embedded", embedded)
	return embedded, nil
}

// embedBatch embeds one batch of records and writes the vectors back.
func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.IndicatorRecord) (int, error) {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = record.SearchableText()
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(embeddings) != len(batch) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	for i, record := range batch {
		record.Vector = reembed.NormalizeVector(embeddings[i])
	}
	if err := p.catalog.UpdateIndicators(ctx, batch...); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
