package copyengine

import (
	"fmt"
	"os"

	"dvdbackup/internal/blockio"
	"dvdbackup/internal/discio"
	"dvdbackup/internal/fillexec"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/gapplan"
	"dvdbackup/internal/report"
)

// initialCopy reads file sequentially from disc and writes it to dst,
// zero-padding any blocks the read-error strategy decides to skip, then
// truncates dst to the expected size. This is the baseline, non-gap-fill
// path; the zero runs it leaves behind on damaged media are exactly what a
// later gap-fill pass is for.
func initialCopy(dst *os.File, disc discio.SectorReader, destPath string, dvdOffset, expectedBlocks uint64, opts Options, acc *gapmap.Accumulator, base uint64) (report.FileReport, error) {
	rep := report.FileReport{FilePath: destPath, ExpectedBlocks: expectedBlocks}

	buf := blockio.Get()
	defer buf.Release()

	skipped := gapplan.New()
	var cursor, filled uint64
	for cursor < expectedBlocks {
		chunk := expectedBlocks - cursor
		if chunk > blockio.MaxChunkBlocks {
			chunk = blockio.MaxChunkBlocks
		}
		readBlock := cursor

		chunkBuf := buf.Slice(int(chunk))
		n, readErr := disc.ReadBlocks(dvdOffset+readBlock, int(chunk), chunkBuf)

		usable := uint64(0)
		if n > 0 {
			usable = uint64(n)
		}

		if usable > 0 {
			if err := writeAt(dst, readBlock, chunkBuf[:usable*discio.SectorSize]); err != nil {
				return rep, fmt.Errorf("write at block %d: %w", readBlock, err)
			}
			filled += usable
		}

		if usable == chunk && readErr == nil {
			cursor += usable
			continue
		}

		advance, zeroBlocks, err := initialCopyAdvance(opts.ErrorPolicy, usable, chunk)
		if err != nil {
			return rep, fmt.Errorf("read error at block %d: %w", readBlock, err)
		}
		if zeroBlocks > 0 {
			if err := writeZeros(dst, readBlock+usable, zeroBlocks); err != nil {
				return rep, fmt.Errorf("zero-pad at block %d: %w", readBlock+usable, err)
			}
			skipped.Add(readBlock+usable, zeroBlocks)
		}
		cursor += advance
	}

	if err := dst.Truncate(int64(expectedBlocks) * discio.SectorSize); err != nil {
		return rep, fmt.Errorf("truncate %s: %w", destPath, err)
	}

	if acc != nil {
		for _, r := range skipped.Ranges() {
			acc.AddGap(base, r.StartBlock, r.BlockCount)
		}
	}

	rep.Filled = int(filled)
	rep.BytesFilled = filled * discio.SectorSize
	rep.VerificationPassed = true
	return rep, nil
}

// initialCopyAdvance mirrors fillexec's read-error policy but additionally
// reports how many blocks the caller must zero-pad, since initial copy mode
// never leaves a hole the way gap-fill mode does.
func initialCopyAdvance(policy fillexec.ErrorPolicy, usable, chunk uint64) (advance, zeroBlocks uint64, err error) {
	switch policy {
	case fillexec.Abort:
		return 0, 0, fillexec.ErrAborted
	case fillexec.SkipBlock:
		return usable + 1, 1, nil
	case fillexec.SkipMultiblock:
		return chunk, chunk - usable, nil
	default:
		return 0, 0, fmt.Errorf("unknown read-error policy %d", policy)
	}
}

func writeAt(dst *os.File, startBlock uint64, data []byte) error {
	offset := int64(startBlock) * discio.SectorSize
	total := 0
	for total < len(data) {
		n, err := dst.WriteAt(data[total:], offset+int64(total))
		total += n
		if err != nil {
			return err
		}
	}
	return nil
}

func writeZeros(dst *os.File, startBlock, count uint64) error {
	zero := make([]byte, discio.SectorSize)
	for i := uint64(0); i < count; i++ {
		if err := writeAt(dst, startBlock+i, zero); err != nil {
			return err
		}
	}
	return nil
}
