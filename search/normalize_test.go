package search

import (
	"testing"

	"github.com/poiesic/statseek/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeywordHits(t *testing.T) {
	t.Run("rescales into unit interval", func(t *testing.T) {
		hits := normalizeKeywordHits([]core.MethodHit{
			{IndicatorId: 1, Score: 2.0},
			{IndicatorId: 2, Score: 12.0},
			{IndicatorId: 3, Score: 7.0},
		})
		require.Len(t, hits, 3)
		assert.Equal(t, 0.0, hits[0].Score)
		assert.Equal(t, 1.0, hits[1].Score)
		assert.Equal(t, 0.5, hits[2].Score)
	})

	t.Run("single positive hit maps to one", func(t *testing.T) {
		hits := normalizeKeywordHits([]core.MethodHit{
			{IndicatorId: 1, Score: 12.0},
		})
		require.Len(t, hits, 1)
		assert.Equal(t, 1.0, hits[0].Score)
	})

	t.Run("all equal zero scores map to zero", func(t *testing.T) {
		hits := normalizeKeywordHits([]core.MethodHit{
			{IndicatorId: 1, Score: 0.0},
			{IndicatorId: 2, Score: 0.0},
		})
		for _, h := range hits {
			assert.Equal(t, 0.0, h.Score)
		}
	})

	t.Run("idempotent on already normalized scores", func(t *testing.T) {
		hits := []core.MethodHit{
			{IndicatorId: 1, Score: 0.0},
			{IndicatorId: 2, Score: 0.25},
			{IndicatorId: 3, Score: 1.0},
		}
		assert.Equal(t, hits, normalizeKeywordHits(hits))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, normalizeKeywordHits(nil))
	})
}

func TestClampVectorHits(t *testing.T) {
	hits := clampVectorHits([]core.MethodHit{
		{IndicatorId: 1, Score: 0.9},
		{IndicatorId: 2, Score: -0.3},
		{IndicatorId: 3, Score: 1.7},
	})
	require.Len(t, hits, 3)
	assert.Equal(t, 0.9, hits[0].Score)
	assert.Equal(t, 0.0, hits[1].Score)
	assert.Equal(t, 1.0, hits[2].Score)
}
