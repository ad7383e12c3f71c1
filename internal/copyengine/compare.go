package copyengine

import (
	"bytes"
	"fmt"
	"os"

	"dvdbackup/internal/blockio"
	"dvdbackup/internal/discio"
	"dvdbackup/internal/report"
)

// Compare exhaustively checks dst against disc, block by block, writing
// nothing. Unlike the sampler in gapFillCopy, it inspects every sector: a
// single divergent byte anywhere fails the comparison and names the exact
// sector.
func Compare(dst *os.File, disc discio.SectorReader, destPath string, dvdOffset, expectedBlocks uint64) (report.FileReport, error) {
	rep := report.FileReport{FilePath: destPath, ExpectedBlocks: expectedBlocks}

	info, err := dst.Stat()
	if err != nil {
		return rep, fmt.Errorf("stat %s: %w", destPath, err)
	}
	if info.Size()%discio.SectorSize != 0 {
		return rep, fmt.Errorf("%w: %s", ErrStructuralMismatch, destPath)
	}
	actualBlocks := uint64(info.Size()) / discio.SectorSize
	if actualBlocks != expectedBlocks {
		return rep, fmt.Errorf("%w: %s has %d blocks, expected %d", ErrSizeMismatch, destPath, actualBlocks, expectedBlocks)
	}

	discBuf := blockio.Get()
	defer discBuf.Release()
	dstBuf := blockio.Get()
	defer dstBuf.Release()

	var block uint64
	for block < expectedBlocks {
		chunk := expectedBlocks - block
		if chunk > blockio.MaxChunkBlocks {
			chunk = blockio.MaxChunkBlocks
		}

		discChunk := discBuf.Slice(int(chunk))
		n, err := disc.ReadBlocks(dvdOffset+block, int(chunk), discChunk)
		if err != nil {
			return rep, fmt.Errorf("read disc at block %d: %w", block, err)
		}
		if uint64(n) != chunk {
			return rep, fmt.Errorf("read disc at block %d: short read (%d of %d blocks)", block, n, chunk)
		}

		dstChunk := dstBuf.Slice(int(chunk))
		if _, err := dst.ReadAt(dstChunk, int64(block)*discio.SectorSize); err != nil {
			return rep, fmt.Errorf("read %s at block %d: %w", destPath, block, err)
		}

		if !bytes.Equal(discChunk, dstChunk) {
			mismatchBlock := block + firstDivergentBlock(discChunk, dstChunk)
			return rep, &MismatchError{FilePath: destPath, Sector: mismatchBlock}
		}

		block += chunk
	}

	rep.VerificationPassed = true
	return rep, nil
}

// firstDivergentBlock returns the index, relative to the start of the
// chunk, of the first sector where a and b differ.
func firstDivergentBlock(a, b []byte) uint64 {
	for i := 0; i*discio.SectorSize < len(a); i++ {
		start := i * discio.SectorSize
		end := start + discio.SectorSize
		if !bytes.Equal(a[start:end], b[start:end]) {
			return uint64(i)
		}
	}
	return 0
}
