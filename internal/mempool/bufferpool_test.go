package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBufferEmpty(t *testing.T) {
	buf := GetBuffer()
	require.NotNil(t, buf)
	assert.Equal(t, 0, buf.Len())

	buf.WriteString("leftover")
	PutBuffer(buf)

	again := GetBuffer()
	assert.Equal(t, 0, again.Len(), "pooled buffer must come back reset")
	PutBuffer(again)
}

func TestPutBufferNil(t *testing.T) {
	assert.NotPanics(t, func() { PutBuffer(nil) })
}
