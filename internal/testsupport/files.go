package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dvdbackup/internal/discio"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// BlankRun describes a run of all-zero sectors to punch into a synthetic
// disc image, simulating a gap left behind by an interrupted rip.
type BlankRun struct {
	StartBlock uint64
	Blocks     uint64
}

// WriteDiscImage builds a totalBlocks-sector file where every sector holds
// a byte derived from its block index, except for the blank runs, which are
// left as all-zero bytes. This mirrors the shape of a partially copied
// title-set file: real content interrupted by unwritten gaps.
func WriteDiscImage(t testing.TB, path string, totalBlocks uint64, gaps []BlankRun) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	isBlank := func(block uint64) bool {
		for _, gap := range gaps {
			if block >= gap.StartBlock && block < gap.StartBlock+gap.Blocks {
				return true
			}
		}
		return false
	}

	buf := make([]byte, discio.SectorSize)
	for block := uint64(0); block < totalBlocks; block++ {
		if isBlank(block) {
			for i := range buf {
				buf[i] = 0
			}
		} else {
			fill := byte(block%251) + 1
			for i := range buf {
				buf[i] = fill
			}
		}
		if _, err := f.Write(buf); err != nil {
			t.Fatalf("write block %d of %s: %v", block, path, err)
		}
	}
}
