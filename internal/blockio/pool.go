// Package blockio owns the fixed-size I/O buffers the gap-fill engine reads
// and writes through. A buffer is sized to the largest chunk the fill
// executor and gap scanner ever issue in one call: 512 logical blocks.
package blockio

import (
	"sync"

	"dvdbackup/internal/discio"
)

// MaxChunkBlocks is the largest number of blocks any single read or write
// issued by the core engine ever covers.
const MaxChunkBlocks = 512

// BufferSize is the byte size of one MaxChunkBlocks-sized buffer (1 MiB).
const BufferSize = MaxChunkBlocks * discio.SectorSize

var pool = sync.Pool{
	New: func() any {
		b := make([]byte, BufferSize)
		return &b
	},
}

// Buffer is a single scoped I/O buffer, checked out of the package pool for
// the lifetime of one fill executor or gap scanner invocation.
type Buffer struct {
	data *[]byte
}

// Get checks out a buffer from the pool. Callers must call Release when
// done; the fill executor and gap scanner do so via defer immediately after
// acquiring one, matching the "buffer scoped to one invocation" resource
// rule.
func Get() *Buffer {
	return &Buffer{data: pool.Get().(*[]byte)}
}

// Release returns the buffer to the pool. Using b after Release is invalid.
func (b *Buffer) Release() {
	if b.data == nil {
		return
	}
	pool.Put(b.data)
	b.data = nil
}

// Bytes returns the full backing slice.
func (b *Buffer) Bytes() []byte {
	return *b.data
}

// Slice returns the first blocks*SectorSize bytes of the buffer, for
// callers that requested fewer than a full chunk.
func (b *Buffer) Slice(blocks int) []byte {
	return (*b.data)[:blocks*discio.SectorSize]
}
