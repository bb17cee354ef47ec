package ingest

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/statseek/ai/mock"
	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/storage"
	"github.com/poiesic/statseek/storage/badger"
)

func newTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()

	catalog, backend, err := badger.NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return catalog
}

func testRecords() []*core.IndicatorRecord {
	return []*core.IndicatorRecord{
		{Id: 1, Code: "A110101", Name: "総人口"},
		{Id: 2, Code: "A110201", Name: "人口密度"},
		{Id: 3, Code: "B220201", Name: "就業者数"},
	}
}

func TestNewPipeline_Validation(t *testing.T) {
	catalog := newTestCatalog(t)

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrCatalogRequired)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(catalog, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestPipeline_Ingest(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	pipeline, err := NewPipeline(catalog, mock.NewMockProvider(), WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	embedded, err := pipeline.Ingest(ctx, testRecords()...)
	require.NoError(t, err)
	assert.Equal(t, 3, embedded)

	count, err := catalog.CountIndicators(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Every stored record carries a unit-length vector.
	stored, err := catalog.GetAllIndicators(ctx)
	require.NoError(t, err)
	for _, record := range stored {
		require.NotEmpty(t, record.Vector)

		var norm float64
		for _, v := range record.Vector {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	}
}

func TestPipeline_Ingest_EmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockQueryRewriter())

	pipeline, err := NewPipeline(catalog, provider)
	require.NoError(t, err)
	defer pipeline.Release()

	embedded, err := pipeline.Ingest(ctx, testRecords()...)
	require.NoError(t, err)
	assert.Zero(t, embedded)

	// Records are stored without vectors and stay keyword-searchable.
	stored, err := catalog.GetAllIndicators(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, record := range stored {
		assert.Empty(t, record.Vector)
	}
}

func TestPipeline_Ingest_InvalidRecord(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	pipeline, err := NewPipeline(catalog, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Ingest(ctx, &core.IndicatorRecord{Code: "A110101"})
	assert.ErrorIs(t, err, core.ErrInvalidIndicator)

	count, err := catalog.CountIndicators(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPipeline_Ingest_Empty(t *testing.T) {
	catalog := newTestCatalog(t)

	pipeline, err := NewPipeline(catalog, mock.NewMockProvider())
	require.NoError(t, err)
	defer pipeline.Release()

	embedded, err := pipeline.Ingest(context.Background())
	require.NoError(t, err)
	assert.Zero(t, embedded)
}
