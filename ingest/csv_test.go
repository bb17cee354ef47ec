package ingest

import (
	"strings"
	"testing"

	"github.com/poiesic/statseek/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalogCSV(t *testing.T) {
	t.Run("full catalog", func(t *testing.T) {
		input := `code,name,field,category,subcategory,definition,source
A110101,総人口,人口・世帯,人口,総数,国勢調査による総人口,国勢調査
A110201,人口密度,人口・世帯,人口,密度,可住地面積あたりの人口,国勢調査
`
		records, err := ReadCatalogCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "A110101", records[0].Code)
		assert.Equal(t, "総人口", records[0].Name)
		assert.Equal(t, "人口・世帯", records[0].Field)
		assert.Equal(t, "国勢調査", records[0].Source)
		assert.Equal(t, core.IDFromContent("A110101"), records[0].Id)
	})

	t.Run("columns in any order", func(t *testing.T) {
		input := "name,code\n総人口,A110101\n"
		records, err := ReadCatalogCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "A110101", records[0].Code)
		assert.Equal(t, "総人口", records[0].Name)
	})

	t.Run("short rows tolerated", func(t *testing.T) {
		input := "code,name,definition\nA110101,総人口\n"
		records, err := ReadCatalogCSV(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Definition)
	})

	t.Run("same catalog yields same ids", func(t *testing.T) {
		input := "code,name\nA110101,総人口\n"
		first, err := ReadCatalogCSV(strings.NewReader(input))
		require.NoError(t, err)
		second, err := ReadCatalogCSV(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, first[0].Id, second[0].Id)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCatalogCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := ReadCatalogCSV(strings.NewReader("code,name,bogus\n"))
		assert.ErrorIs(t, err, ErrUnknownColumn)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := ReadCatalogCSV(strings.NewReader("name,definition\n総人口,def\n"))
		assert.ErrorIs(t, err, ErrRequiredColumn)
	})

	t.Run("row without name rejected with line number", func(t *testing.T) {
		input := "code,name\nA110101,総人口\nA110201,\n"
		_, err := ReadCatalogCSV(strings.NewReader(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrEmptyName)
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("header only yields no records", func(t *testing.T) {
		records, err := ReadCatalogCSV(strings.NewReader("code,name\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
