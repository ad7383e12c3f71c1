// Package disciotest provides an in-memory discio.SectorReader for exercising
// the gap-filling engine without a physical drive.
package disciotest

import (
	"fmt"

	"dvdbackup/internal/discio"
)

// FakeSectorReader serves sectors from an in-memory byte slice, optionally
// injecting a read error or short read at a specific block.
type FakeSectorReader struct {
	Data []byte

	// FailAtBlock, when non-negative, makes any read touching that block
	// return FailErr (or a generic error) instead of data. If the failing
	// block falls partway through a requested chunk, the blocks before it
	// are still returned as a partial read.
	FailAtBlock int64
	FailErr     error

	// ShortAtBlock, when non-negative, caps any read touching that block so
	// it returns the blocks before ShortAtBlock plus at most ShortBlocks more,
	// simulating a drive returning fewer blocks than requested without an
	// outright error.
	ShortAtBlock int64
	ShortBlocks  int
}

// NewFakeSectorReader wraps data, which must be a multiple of the sector
// size, as a readable disc image.
func NewFakeSectorReader(data []byte) *FakeSectorReader {
	return &FakeSectorReader{Data: data, FailAtBlock: -1, ShortAtBlock: -1}
}

// ReadBlocks implements discio.SectorReader.
func (f *FakeSectorReader) ReadBlocks(blockOffset uint64, blockCount int, buf []byte) (int, error) {
	start := int64(blockOffset)

	if f.FailAtBlock >= 0 && f.FailAtBlock >= start && f.FailAtBlock < start+int64(blockCount) {
		usable := int(f.FailAtBlock - start)
		if usable > 0 {
			f.copyBlocks(buf, start, usable)
			return usable, nil
		}
		err := f.FailErr
		if err == nil {
			err = &readError{block: f.FailAtBlock}
		}
		return 0, err
	}

	limit := blockCount
	if f.ShortAtBlock >= 0 && f.ShortAtBlock >= start && f.ShortAtBlock < start+int64(blockCount) {
		usable := int(f.ShortAtBlock-start) + f.ShortBlocks
		if usable < limit {
			limit = usable
		}
	}

	dataBlocks := int64(len(f.Data)) / discio.SectorSize
	if start >= dataBlocks {
		return 0, nil
	}
	if start+int64(limit) > dataBlocks {
		limit = int(dataBlocks - start)
	}
	if limit <= 0 {
		return 0, nil
	}

	f.copyBlocks(buf, start, limit)
	return limit, nil
}

func (f *FakeSectorReader) copyBlocks(buf []byte, start int64, count int) {
	src := f.Data[start*discio.SectorSize : (start+int64(count))*discio.SectorSize]
	copy(buf, src)
}

// SizeBlocks implements discio.SectorReader.
func (f *FakeSectorReader) SizeBlocks() (uint64, error) {
	return uint64(len(f.Data)) / discio.SectorSize, nil
}

type readError struct {
	block int64
}

func (e *readError) Error() string {
	return fmt.Sprintf("simulated read failure at block %d", e.block)
}
