package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dvdbackup/internal/discio"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/gapscan"
)

func newGapMapCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gap-map <targetdir>",
		Short: "Re-render the ASCII gap map for an already-ripped tree without touching the disc",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGapMap(cmd, args[0])
		},
	}
	return cmd
}

func runGapMap(cmd *cobra.Command, targetDir string) error {
	files, err := collectVideoFiles(targetDir)
	if err != nil {
		return fmt.Errorf("collect VIDEO_TS files under %s: %w", targetDir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no VIDEO_TS files found under %s", targetDir)
	}

	accumulator := gapmap.New()
	for _, path := range files {
		if err := accumulateFileGaps(accumulator, path); err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scanned %d file(s) under %s\n", len(files), targetDir)
	fmt.Fprint(out, accumulator.Render())
	return nil
}

// accumulateFileGaps re-scans one already-ripped file, treating its current
// on-disk size as the expected size (a re-rendered gap map can't recover a
// truncated tail's true extent without re-reading the disc; internal blank
// runs are still visible and are what this command is for).
func accumulateFileGaps(acc *gapmap.Accumulator, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	expectedBlocks := uint64(info.Size()) / discio.SectorSize

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := gapscan.Scan(f, expectedBlocks)
	if err != nil {
		return err
	}

	base := acc.BeginFile(expectedBlocks)
	for _, r := range result.Plan.Ranges() {
		acc.AddGap(base, r.StartBlock, r.BlockCount)
	}
	return nil
}

func collectVideoFiles(targetDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(targetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Base(filepath.Dir(path)), "VIDEO_TS") {
			return nil
		}
		upper := strings.ToUpper(path)
		if strings.HasSuffix(upper, ".VOB") || strings.HasSuffix(upper, ".IFO") || strings.HasSuffix(upper, ".BUP") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
