package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/storage"
	"github.com/poiesic/statseek/storage/badger"
)

func newTestCatalog(t *testing.T, count int) storage.CatalogRepository {
	t.Helper()

	catalog, backend, err := badger.NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	for i := 0; i < count; i++ {
		code := fmt.Sprintf("A%06d", i+1)
		record := &core.IndicatorRecord{
			Id:   core.IDFromContent(code),
			Code: code,
			Name: fmt.Sprintf("indicator %d", i+1),
		}
		require.NoError(t, catalog.AddIndicators(context.Background(), record))
	}
	return catalog
}

func TestRecordIterator_ForEach(t *testing.T) {
	ctx := context.Background()

	t.Run("visits all records in batches", func(t *testing.T) {
		catalog := newTestCatalog(t, 7)
		it := NewRecordIterator(catalog, 3)

		var batchSizes []int
		total := 0
		err := it.ForEach(ctx, func(records []*core.IndicatorRecord) error {
			batchSizes = append(batchSizes, len(records))
			total += len(records)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Equal(t, []int{3, 3, 1}, batchSizes)
	})

	t.Run("empty catalog visits nothing", func(t *testing.T) {
		catalog := newTestCatalog(t, 0)
		it := NewRecordIterator(catalog, 3)

		called := false
		err := it.ForEach(ctx, func([]*core.IndicatorRecord) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("stops on callback error", func(t *testing.T) {
		catalog := newTestCatalog(t, 7)
		it := NewRecordIterator(catalog, 3)

		wantErr := errors.New("boom")
		batches := 0
		err := it.ForEach(ctx, func([]*core.IndicatorRecord) error {
			batches++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, batches)
	})

	t.Run("cancelled context", func(t *testing.T) {
		catalog := newTestCatalog(t, 3)
		it := NewRecordIterator(catalog, 1)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		err := it.ForEach(cancelled, func([]*core.IndicatorRecord) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("invalid batch size falls back to default", func(t *testing.T) {
		catalog := newTestCatalog(t, 2)
		it := NewRecordIterator(catalog, 0)

		batches := 0
		err := it.ForEach(ctx, func(records []*core.IndicatorRecord) error {
			batches++
			assert.Len(t, records, 2)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, batches)
	})
}
