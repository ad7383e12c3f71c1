package copyengine

import (
	"errors"
	"fmt"
	"os"

	"dvdbackup/internal/discio"
	"dvdbackup/internal/fillexec"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/gapscan"
	"dvdbackup/internal/report"
	"dvdbackup/internal/verify"
)

// gapFillCopy runs the scan→verify→fill→re-scan sequence described for one
// output file: it never truncates dst, never rewrites a verified-matching
// sector, and fails the file outright on any verification mismatch before
// writing a single byte.
func gapFillCopy(dst *os.File, disc discio.SectorReader, destPath string, dvdOffset, expectedBlocks uint64, opts Options, acc *gapmap.Accumulator, base uint64) (report.FileReport, error) {
	rep := report.FileReport{FilePath: destPath, ExpectedBlocks: expectedBlocks}

	before, err := gapscan.Scan(dst, expectedBlocks)
	if err != nil {
		return rep, fmt.Errorf("scan %s: %w", destPath, err)
	}

	plan := before.Plan
	var truncatedBefore uint64
	if expectedBlocks > before.FullBlocks {
		truncatedBefore = expectedBlocks - before.FullBlocks
		plan.Add(before.FullBlocks, truncatedBefore)
	}

	rep.BlankBefore = int(before.BlankBlocks)
	rep.TruncatedBefore = truncatedBefore

	if acc != nil {
		for _, r := range plan.Ranges() {
			acc.AddGap(base, r.StartBlock, r.BlockCount)
		}
	}

	nonGapBlocks := before.FullBlocks - before.BlankBlocks
	if !plan.Empty() && nonGapBlocks > 0 {
		samples := verify.SelectSamples(plan, expectedBlocks, opts.SampleCount)
		rep.SamplesVerified = len(samples)
		if err := verify.Verify(dst, disc, dvdOffset, samples); err != nil {
			var sampleErr *verify.MismatchError
			var sector uint64
			if errors.As(err, &sampleErr) {
				sector = sampleErr.Block
			}
			return rep, &MismatchError{FilePath: destPath, Sector: sector}
		}
	}
	rep.VerificationPassed = true

	if !plan.Empty() {
		result, fillErr := fillexec.Fill(dst, disc, dvdOffset, plan, fillexec.Options{
			Strategy:    opts.Strategy,
			ErrorPolicy: opts.ErrorPolicy,
			RandomSeed:  opts.RandomSeed,
		})
		rep.Filled = int(result.BlocksWritten)
		rep.BytesFilled = result.BlocksWritten * discio.SectorSize
		if fillErr != nil {
			return rep, fmt.Errorf("fill %s: %w", destPath, fillErr)
		}
	}

	after, err := gapscan.Scan(dst, expectedBlocks)
	if err != nil {
		// Best-effort: the fill already succeeded, so a re-scan failure
		// doesn't fail the file.
		return rep, nil
	}
	rep.BlankAfter = int(after.BlankBlocks)
	if expectedBlocks > after.FullBlocks {
		rep.TruncatedAfter = expectedBlocks - after.FullBlocks
	}

	return rep, nil
}
