package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientCount(t *testing.T, rec *TesseractRecognizer) int {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.clients)
}

func TestTesseractPoolGrowsLazily(t *testing.T) {
	rec, err := NewTesseract("", 3)
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()

	assert.Equal(t, 3, cap(rec.idle))
	assert.Equal(t, 1, clientCount(t, rec), "one client created eagerly at startup")

	ctx := context.Background()
	a, err := rec.acquire(ctx)
	require.NoError(t, err)
	b, err := rec.acquire(ctx)
	require.NoError(t, err)
	assert.NotSame(t, a, b, "concurrent checkouts get distinct clients")
	assert.Equal(t, 2, clientCount(t, rec))

	rec.release(a)
	rec.release(b)

	c, err := rec.acquire(ctx)
	require.NoError(t, err)
	rec.release(c)
	assert.Equal(t, 2, clientCount(t, rec), "idle clients are reused before new ones are created")
}

func TestTesseractAcquireHonorsCancellation(t *testing.T) {
	rec, err := NewTesseract("", 1)
	require.NoError(t, err)
	defer func() { _ = rec.Close() }()

	client, err := rec.acquire(context.Background())
	require.NoError(t, err)
	defer rec.release(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = rec.acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled, "a drained pool blocks until a client frees or the context ends")
}

func TestTesseractRecognizeAfterClose(t *testing.T) {
	rec, err := NewTesseract("", 1)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	_, err = rec.Recognize(context.Background(), []byte("img"))
	assert.Error(t, err)
	assert.NoError(t, rec.Close(), "closing twice is harmless")
}
