package pdfchunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRange(t *testing.T) {
	plan := Plan{TotalPages: 16, ChunkSize: 10, NumChunks: 2}

	first, last, err := plan.PageRange(1)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 10, last)

	first, last, err = plan.PageRange(2)
	require.NoError(t, err)
	assert.Equal(t, 11, first)
	assert.Equal(t, 16, last, "final chunk is truncated to the page count")
}

func TestPageRangeOutOfBounds(t *testing.T) {
	plan := Plan{TotalPages: 10, ChunkSize: 10, NumChunks: 1}

	_, _, err := plan.PageRange(0)
	assert.Error(t, err)
	_, _, err = plan.PageRange(2)
	assert.Error(t, err)
}

func TestPageRangeExactMultiple(t *testing.T) {
	plan := Plan{TotalPages: 20, ChunkSize: 10, NumChunks: 2}

	first, last, err := plan.PageRange(2)
	require.NoError(t, err)
	assert.Equal(t, 11, first)
	assert.Equal(t, 20, last)
}

func TestPageRangeSinglePageChunks(t *testing.T) {
	plan := Plan{TotalPages: 3, ChunkSize: 1, NumChunks: 3}

	for i := 1; i <= 3; i++ {
		first, last, err := plan.PageRange(i)
		require.NoError(t, err)
		assert.Equal(t, i, first)
		assert.Equal(t, i, last)
	}
}
