package discio

import (
	"fmt"
	"io"
	"os"
)

// SectorSize is the fixed logical block size of DVD-Video media.
const SectorSize = 2048

// SectorReader reads fixed-size logical blocks at an absolute block offset.
// ReadBlocks makes a single attempt at the underlying medium and reports
// however many whole blocks it actually obtained: a return equal to
// blockCount is a full read, a smaller positive return is a partial read
// (the caller's read-error strategy decides what happens to the rest), and
// zero with a nil error means end of data. It does not retry short reads
// itself — on damaged media, what happens to the unread blocks is decided
// by the caller (the fill executor applies its read-error policy), not
// silently by the reader.
type SectorReader interface {
	ReadBlocks(blockOffset uint64, blockCount int, buf []byte) (int, error)
	// SizeBlocks reports the total number of SectorSize blocks available.
	SizeBlocks() (uint64, error)
}

// FileSectorReader reads sectors from a device node or a plain file
// standing in for one (an ISO image, or an existing partial rip).
type FileSectorReader struct {
	file *os.File
}

// OpenSectorReader opens path for positional reads of DVD-Video sectors.
func OpenSectorReader(path string) (*FileSectorReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &FileSectorReader{file: f}, nil
}

// Close releases the underlying file handle.
func (r *FileSectorReader) Close() error {
	return r.file.Close()
}

// ReadBlocks reads up to blockCount whole blocks into buf starting at
// blockOffset, in a single positional read attempt, and returns the number
// of whole blocks obtained. buf must be at least blockCount*SectorSize.
func (r *FileSectorReader) ReadBlocks(blockOffset uint64, blockCount int, buf []byte) (int, error) {
	if blockCount <= 0 {
		return 0, fmt.Errorf("block count must be positive, got %d", blockCount)
	}
	if len(buf) < blockCount*SectorSize {
		return 0, fmt.Errorf("buffer too small for %d blocks: have %d bytes", blockCount, len(buf))
	}

	offset := int64(blockOffset) * SectorSize
	n, err := r.file.ReadAt(buf[:blockCount*SectorSize], offset)
	whole := n / SectorSize
	if err == io.EOF {
		if whole > 0 {
			return whole, nil
		}
		return 0, nil
	}
	if err != nil {
		return whole, err
	}
	return whole, nil
}

// SizeBlocks returns the file size in whole SectorSize blocks.
func (r *FileSectorReader) SizeBlocks() (uint64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat sector reader: %w", err)
	}
	return uint64(info.Size()) / SectorSize, nil
}
