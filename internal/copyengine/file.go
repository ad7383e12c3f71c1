// Package copyengine is the copy orchestrator: for one output file it
// opens the destination, drives scan→verify→fill (or the simpler initial
// copy), and reports the outcome. For a whole rip run, Run walks a disc
// layout in on-disc order and aggregates per-file reports.
package copyengine

import (
	"fmt"
	"os"

	"dvdbackup/internal/discio"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/report"
)

// CopyFile drives one output file through the appropriate path: Compare
// mode runs an exhaustive read-only check; GapFill mode runs scan→verify→
// fill; otherwise a sequential initial copy is performed. When acc is
// non-nil, the blocks found blank or missing are recorded at global offset
// base for the rip-wide gap map.
func CopyFile(disc discio.SectorReader, destPath string, dvdOffset, expectedBlocks uint64, opts Options, acc *gapmap.Accumulator, base uint64) (report.FileReport, error) {
	dst, existed, err := openDestination(destPath, opts)
	if err != nil {
		return report.FileReport{FilePath: destPath, ExpectedBlocks: expectedBlocks}, err
	}
	defer dst.Close()

	switch {
	case opts.Compare:
		return Compare(dst, disc, destPath, dvdOffset, expectedBlocks)
	case opts.GapFill:
		return gapFillCopy(dst, disc, destPath, dvdOffset, expectedBlocks, opts, acc, base)
	default:
		if existed && opts.NoOverwrite {
			return report.FileReport{FilePath: destPath, ExpectedBlocks: expectedBlocks}, fmt.Errorf("refusing to overwrite existing file %s (no-overwrite set)", destPath)
		}
		return initialCopy(dst, disc, destPath, dvdOffset, expectedBlocks, opts, acc, base)
	}
}

// openDestination opens destPath read/write without truncation if it
// already exists, or creates it read/write otherwise, per the orchestrator
// contract in step 1.
func openDestination(destPath string, opts Options) (*os.File, bool, error) {
	if opts.Compare {
		f, err := os.OpenFile(destPath, os.O_RDONLY, 0)
		if err != nil {
			return nil, false, fmt.Errorf("open %s: %w", destPath, err)
		}
		return f, true, nil
	}

	_, statErr := os.Stat(destPath)
	existed := statErr == nil

	f, err := os.OpenFile(destPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, existed, fmt.Errorf("open %s: %w", destPath, err)
	}
	return f, existed, nil
}
