package blockio

import (
	"testing"

	"dvdbackup/internal/discio"
)

func TestGetReturnsFullSizeBuffer(t *testing.T) {
	buf := Get()
	defer buf.Release()

	if len(buf.Bytes()) != BufferSize {
		t.Fatalf("expected buffer of %d bytes, got %d", BufferSize, len(buf.Bytes()))
	}
}

func TestSliceReturnsRequestedBlocks(t *testing.T) {
	buf := Get()
	defer buf.Release()

	s := buf.Slice(3)
	if len(s) != 3*discio.SectorSize {
		t.Fatalf("expected %d bytes, got %d", 3*discio.SectorSize, len(s))
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	buf := Get()
	buf.Release()
	buf.Release() // must not panic
}
