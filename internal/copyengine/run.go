package copyengine

import (
	"fmt"

	"dvdbackup/internal/discio"
	"dvdbackup/internal/fileutil"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/layout"
	"dvdbackup/internal/report"
)

// Run drives every file in discLayout, in on-disc order (VMG, then each
// title set's IFO/BUP, menu VOB, and part VOBs), and returns one FileReport
// per file. It does not stop at the first failure: a bad file is recorded
// with its error and the run continues to the next file, matching the
// "gap-filling a damaged disc" use case where one unreadable title
// shouldn't abort the whole rip.
//
// A freshly written info file is immediately duplicated to its BUP sibling
// with a verified local copy instead of re-reading the (possibly slow or
// damaged) disc a second time for bytes already known to be identical.
func Run(disc discio.SectorReader, discLayout layout.DiscLayout, accumulator *gapmap.Accumulator, opts Options) []report.FileReport {
	var reports []report.FileReport
	var lastInfoPath string
	var lastInfoClean bool

	for _, ts := range discLayout.TitleSets {
		for _, file := range ts.Files {
			base := accumulator.BeginFile(file.ExpectedBlocks)

			if file.Kind == layout.KindBackup && lastInfoClean && !opts.Compare {
				rep, err := copyBackupFromInfo(lastInfoPath, file.DestPath, file.ExpectedBlocks)
				if err != nil {
					rep.Err = err
				}
				reports = append(reports, rep)
				continue
			}

			rep, err := CopyFile(disc, file.DestPath, file.DVDOffset, file.ExpectedBlocks, opts, accumulator, base)
			if err != nil {
				rep.Err = err
			}
			reports = append(reports, rep)

			if file.Kind == layout.KindInfo {
				lastInfoPath = file.DestPath
				lastInfoClean = err == nil
			}
		}
	}

	return reports
}

func copyBackupFromInfo(infoPath, backupPath string, expectedBlocks uint64) (report.FileReport, error) {
	rep := report.FileReport{FilePath: backupPath, ExpectedBlocks: expectedBlocks, VerificationPassed: true}
	if err := fileutil.CopyFileVerified(infoPath, backupPath); err != nil {
		return rep, fmt.Errorf("copy %s from %s: %w", backupPath, infoPath, err)
	}
	return rep, nil
}
