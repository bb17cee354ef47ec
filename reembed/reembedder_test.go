package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/statseek/ai/mock"
)

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}
}

func TestReembedder_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("reembeds entire catalog", func(t *testing.T) {
		catalog := newTestCatalog(t, 5)

		var out bytes.Buffer
		r := NewReembedder(catalog, mock.NewMockEmbedder(), testConfig(), &out)
		require.NoError(t, r.Run(ctx))

		stored, err := catalog.GetAllIndicators(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 5)
		for _, record := range stored {
			assert.NotEmpty(t, record.Vector)
		}
		assert.Contains(t, out.String(), "Reembedding complete")
	})

	t.Run("empty catalog reports and succeeds", func(t *testing.T) {
		catalog := newTestCatalog(t, 0)

		var out bytes.Buffer
		r := NewReembedder(catalog, mock.NewMockEmbedder(), testConfig(), &out)
		require.NoError(t, r.Run(ctx))
		assert.Contains(t, out.String(), "0 records")
	})

	t.Run("surfaces batch failures", func(t *testing.T) {
		catalog := newTestCatalog(t, 3)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		var out bytes.Buffer
		r := NewReembedder(catalog, embedder, testConfig(), &out)
		err := r.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to process batch")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		catalog := newTestCatalog(t, 1)

		var out bytes.Buffer
		r := NewReembedder(catalog, mock.NewMockEmbedder(), nil, &out)
		require.NoError(t, r.Run(ctx))
	})
}
