// Package mempool provides pooled byte buffers for hot encode paths.
package mempool

import (
	"bytes"
	"sync"
)

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer retrieves an empty buffer from the pool.
// The caller must return it via PutBuffer when done.
func GetBuffer() *bytes.Buffer {
	buf, ok := bufPool.Get().(*bytes.Buffer)
	if !ok {
		return new(bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. It is safe to pass nil.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	// Oversized buffers are dropped so one huge page image does not pin
	// memory for the rest of the run.
	if buf.Cap() > 8<<20 {
		return
	}
	bufPool.Put(buf)
}
