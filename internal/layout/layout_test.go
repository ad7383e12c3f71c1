package layout

import (
	"path/filepath"
	"testing"
)

func TestDiscoverVMGOnly(t *testing.T) {
	l, err := Discover("/rips", "MOVIE", TitleSetSpec{IFOBlocks: 2}, nil)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(l.TitleSets) != 1 {
		t.Fatalf("expected 1 title set (VMG), got %d", len(l.TitleSets))
	}
	vmg := l.TitleSets[0]
	if len(vmg.Files) != 2 {
		t.Fatalf("expected 2 VMG files, got %d", len(vmg.Files))
	}
	if filepath.Base(vmg.Files[0].DestPath) != "VIDEO_TS.IFO" {
		t.Fatalf("expected VIDEO_TS.IFO, got %s", vmg.Files[0].DestPath)
	}
	if filepath.Base(vmg.Files[1].DestPath) != "VIDEO_TS.BUP" {
		t.Fatalf("expected VIDEO_TS.BUP, got %s", vmg.Files[1].DestPath)
	}
}

func TestDiscoverTitleSetLayout(t *testing.T) {
	vmg := TitleSetSpec{IFOBlocks: 2}
	titles := []TitleSetSpec{
		{Number: 1, IFOBlocks: 3, MenuBlocks: 100, VOBParts: 2, PartBlocks: []uint64{500, 600}},
	}

	l, err := Discover("/rips", "MOVIE", vmg, titles)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(l.TitleSets) != 2 {
		t.Fatalf("expected 2 title sets, got %d", len(l.TitleSets))
	}

	ts1 := l.TitleSets[1]
	// IFO, BUP, menu VOB, part 1, part 2
	if len(ts1.Files) != 5 {
		t.Fatalf("expected 5 files in title set 1, got %d", len(ts1.Files))
	}
	names := []string{"VTS_01_0.IFO", "VTS_01_0.BUP", "VTS_01_0.VOB", "VTS_01_1.VOB", "VTS_01_2.VOB"}
	for i, name := range names {
		if got := filepath.Base(ts1.Files[i].DestPath); got != name {
			t.Errorf("file %d: expected %s, got %s", i, name, got)
		}
	}
}

func TestDiscoverOffsetsAreSequential(t *testing.T) {
	vmg := TitleSetSpec{IFOBlocks: 2}
	titles := []TitleSetSpec{
		{Number: 1, IFOBlocks: 3, VOBParts: 1, PartBlocks: []uint64{1000}},
	}

	l, err := Discover("/rips", "MOVIE", vmg, titles)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	var lastEnd uint64
	for _, ts := range l.TitleSets {
		for _, f := range ts.Files {
			if f.DVDOffset != lastEnd {
				t.Fatalf("expected offset %d, got %d for %s", lastEnd, f.DVDOffset, f.DestPath)
			}
			lastEnd += f.ExpectedBlocks
		}
	}
}

func TestDiscoverRejectsTooManyVOBParts(t *testing.T) {
	vmg := TitleSetSpec{IFOBlocks: 2}
	titles := []TitleSetSpec{{Number: 1, VOBParts: 10}}

	if _, err := Discover("/rips", "MOVIE", vmg, titles); err == nil {
		t.Fatal("expected error for more than 9 VOB parts")
	}
}

func TestDiscoverDefaultsPartSizeToMaxVOBBlocks(t *testing.T) {
	vmg := TitleSetSpec{IFOBlocks: 2}
	titles := []TitleSetSpec{{Number: 1, VOBParts: 1}}

	l, err := Discover("/rips", "MOVIE", vmg, titles)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	part := l.TitleSets[1].Files[len(l.TitleSets[1].Files)-1]
	if part.ExpectedBlocks != MaxVOBBlocks {
		t.Fatalf("expected default %d blocks, got %d", MaxVOBBlocks, part.ExpectedBlocks)
	}
}
