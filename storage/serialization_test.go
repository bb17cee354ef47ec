package storage

import (
	"testing"

	"github.com/poiesic/statseek/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorRoundTrip(t *testing.T) {
	record := &core.IndicatorRecord{
		Id:          core.IDFromContent("A110101"),
		Code:        "A110101",
		Name:        "総人口",
		Field:       "人口・世帯",
		Category:    "人口",
		SubCategory: "人口増減",
		Definition:  "国勢調査による総人口",
		Source:      "国勢調査",
		Vector:      []float32{0.1, -0.5, 0.25},
	}

	data := MarshalIndicator(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalIndicator(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestIndicatorRoundTrip_NoVector(t *testing.T) {
	record := &core.IndicatorRecord{
		Id:   core.IDFromContent("B1101"),
		Code: "B1101",
		Name: "総面積",
	}

	decoded, err := UnmarshalIndicator(MarshalIndicator(record))
	require.NoError(t, err)
	assert.Equal(t, record.Code, decoded.Code)
	assert.Empty(t, decoded.Vector)
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("A110101")

	decoded, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestUnmarshalIndicator_Corrupt(t *testing.T) {
	_, err := UnmarshalIndicator([]byte{0xff})
	assert.Error(t, err)
}
