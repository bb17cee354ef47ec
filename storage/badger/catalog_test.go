package badger

import (
	"context"
	"testing"

	"github.com/poiesic/statseek/core"
	"github.com/poiesic/statseek/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()
	catalog, backend, err := NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalog.Close()
		backend.Close()
	})
	return catalog
}

func testIndicator(code, name string, vector []float32) *core.IndicatorRecord {
	return &core.IndicatorRecord{
		Id:     core.IDFromContent(code),
		Code:   code,
		Name:   name,
		Field:  "人口・世帯",
		Vector: vector,
	}
}

func TestCatalog_AddAndGet(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	record := testIndicator("A110101", "総人口", []float32{0.9, 0.1, 0.0})
	require.NoError(t, catalog.AddIndicators(ctx, record))

	got, err := catalog.GetIndicator(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestCatalog_GetMissing(t *testing.T) {
	catalog := newTestCatalog(t)

	_, err := catalog.GetIndicator(context.Background(), core.ID(42))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_AddRejectsInvalid(t *testing.T) {
	catalog := newTestCatalog(t)

	err := catalog.AddIndicators(context.Background(), &core.IndicatorRecord{Code: "A1101"})
	assert.ErrorIs(t, err, core.ErrInvalidIndicator)
}

func TestCatalog_GetIndicators_SkipsMissing(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	a := testIndicator("A110101", "総人口", nil)
	b := testIndicator("A110102", "総人口（男）", nil)
	require.NoError(t, catalog.AddIndicators(ctx, a, b))

	records, err := catalog.GetIndicators(ctx, a.Id, core.ID(999), b.Id)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCatalog_GetByCode(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	record := testIndicator("A110101", "総人口", nil)
	require.NoError(t, catalog.AddIndicators(ctx, record))

	got, err := catalog.GetIndicatorByCode(ctx, "A110101")
	require.NoError(t, err)
	assert.Equal(t, record.Id, got.Id)

	_, err = catalog.GetIndicatorByCode(ctx, "Z9999")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_GetAllAndCount(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.AddIndicators(ctx,
		testIndicator("A110101", "総人口", nil),
		testIndicator("A110102", "総人口（男）", nil),
		testIndicator("B110101", "総面積", nil),
	))

	all, err := catalog.GetAllIndicators(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	count, err := catalog.CountIndicators(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCatalog_Update(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	record := testIndicator("A110101", "総人口", nil)
	require.NoError(t, catalog.AddIndicators(ctx, record))

	record.Vector = []float32{0.5, 0.5, 0.0}
	require.NoError(t, catalog.UpdateIndicators(ctx, record))

	got, err := catalog.GetIndicator(ctx, record.Id)
	require.NoError(t, err)
	assert.Equal(t, record.Vector, got.Vector)

	missing := testIndicator("Z9999", "架空", nil)
	assert.ErrorIs(t, catalog.UpdateIndicators(ctx, missing), storage.ErrNotFound)
}

func TestCatalog_FindSimilar(t *testing.T) {
	catalog := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.AddIndicators(ctx,
		testIndicator("A110101", "総人口", []float32{0.9, 0.1, 0.0}),
		testIndicator("A110102", "総人口（男）", []float32{0.8, 0.2, 0.0}),
		testIndicator("B110101", "総面積", []float32{0.0, 0.1, 0.9}),
		testIndicator("C110101", "未埋め込み", nil), // no vector, must be skipped
	))

	hits, err := catalog.FindSimilar(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, core.IDFromContent("A110101"), hits[0].IndicatorId)
	assert.Equal(t, core.IDFromContent("A110102"), hits[1].IndicatorId)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestCatalog_FindSimilar_Empty(t *testing.T) {
	catalog := newTestCatalog(t)

	hits, err := catalog.FindSimilar(context.Background(), []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
