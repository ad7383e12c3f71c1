// Package gapscan reads a destination file and identifies the block ranges
// that are missing or entirely zero-filled.
package gapscan

import (
	"fmt"
	"io"
	"os"

	"dvdbackup/internal/blockio"
	"dvdbackup/internal/discio"
	"dvdbackup/internal/gapplan"
)

// Result is the outcome of scanning one destination file.
type Result struct {
	Plan          *gapplan.Plan
	BlankBlocks   uint64
	FullBlocks    uint64
	ExistingBytes int64
}

// Scan reads dst positionally in chunks of up to blockio.MaxChunkBlocks
// blocks and returns the gap plan covering [0, min(FullBlocks, expected)).
// It does not append the truncated-tail range beyond existing content; the
// caller does that once it has expectedBlocks and Result.FullBlocks.
func Scan(dst *os.File, expectedBlocks uint64) (Result, error) {
	info, err := dst.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat destination: %w", err)
	}
	existingBytes := info.Size()
	fullBlocks := uint64(existingBytes) / discio.SectorSize

	scanBlocks := fullBlocks
	if expectedBlocks < scanBlocks {
		scanBlocks = expectedBlocks
	}

	plan := gapplan.New()
	buf := blockio.Get()
	defer buf.Release()

	var pendingStart int64 = -1
	var block uint64

	for block < scanBlocks {
		chunkBlocks := blockio.MaxChunkBlocks
		if remaining := scanBlocks - block; uint64(chunkBlocks) > remaining {
			chunkBlocks = int(remaining)
		}

		chunk := buf.Slice(chunkBlocks)
		if err := readFullAt(dst, chunk, int64(block)*discio.SectorSize); err != nil {
			return Result{}, fmt.Errorf("scan read at block %d: %w", block, err)
		}

		for i := 0; i < chunkBlocks; i++ {
			sector := chunk[i*discio.SectorSize : (i+1)*discio.SectorSize]
			current := block + uint64(i)
			if isBlank(sector) {
				if pendingStart < 0 {
					pendingStart = int64(current)
				}
			} else if pendingStart >= 0 {
				plan.Add(uint64(pendingStart), current-uint64(pendingStart))
				pendingStart = -1
			}
		}

		block += uint64(chunkBlocks)
	}

	if pendingStart >= 0 {
		plan.Add(uint64(pendingStart), scanBlocks-uint64(pendingStart))
	}

	return Result{
		Plan:          plan,
		BlankBlocks:   plan.TotalBlocks(),
		FullBlocks:    fullBlocks,
		ExistingBytes: existingBytes,
	}, nil
}

// readFullAt reads exactly len(buf) bytes from f starting at offset,
// looping over positional reads until satisfied, matching the "no shared
// file cursor" I/O contract.
func readFullAt(f *os.File, buf []byte, offset int64) error {
	total := 0
	for total < len(buf) {
		n, err := f.ReadAt(buf[total:], offset+int64(total))
		total += n
		if err != nil {
			if err == io.EOF && total == len(buf) {
				return nil
			}
			return err
		}
	}
	return nil
}

func isBlank(sector []byte) bool {
	for _, b := range sector {
		if b != 0 {
			return false
		}
	}
	return true
}
