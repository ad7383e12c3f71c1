// Package layout describes where a DVD-Video title set's files land on
// disk and how large the core engine should expect each of them to be. It
// does not parse IFO structures or pick a main feature; those remain
// external inputs (operator-supplied counts, or a future collaborator) fed
// into Discover.
package layout

import (
	"fmt"
	"path/filepath"
)

// MaxVOBBlocks is the largest a single title VOB part is ever expected to
// be: 1 GiB expressed in 2048-byte blocks.
const MaxVOBBlocks = 524288

// FileKind distinguishes the role an OutputFile plays: IFOs and VOBs go
// through the copy engine, while a BUP can be copied from its IFO.
type FileKind int

const (
	KindInfo FileKind = iota
	KindBackup
	KindMenuVOB
	KindTitleVOB
)

func (k FileKind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindBackup:
		return "backup"
	case KindMenuVOB:
		return "menu-vob"
	case KindTitleVOB:
		return "title-vob"
	default:
		return "unknown"
	}
}

// OutputFile describes one file the copy orchestrator will produce.
type OutputFile struct {
	Kind           FileKind
	DestPath       string
	DVDOffset      uint64
	ExpectedBlocks uint64
}

// TitleSet is one numbered group of files on the disc: VMG is title set 0,
// VTS_01 through VTS_99 follow.
type TitleSet struct {
	Number int
	Files  []OutputFile
}

// DiscLayout is the full set of title sets destined for one target
// directory.
type DiscLayout struct {
	Root      string
	TitleSets []TitleSet
}

// TitleSetSpec is the operator-supplied (or externally discovered) shape of
// one title set: how many VOB parts it has and how big each file is
// expected to be, in blocks. VMG (title set 0) has no menu or part VOBs of
// its own, only IFO/BUP.
type TitleSetSpec struct {
	Number     int
	VOBParts   int
	IFOBlocks  uint64
	MenuBlocks uint64
	PartBlocks []uint64 // len must equal VOBParts when non-nil
}

// Discover builds a DiscLayout rooted at <targetDir>/<titleName>/VIDEO_TS,
// laying out sequential DVD-Video offsets for each file in on-disc order:
// VMG IFO/BUP, then per title set IFO/BUP, menu VOB, and part VOBs.
func Discover(targetDir, titleName string, vmg TitleSetSpec, titleSets []TitleSetSpec) (DiscLayout, error) {
	videoTS := filepath.Join(targetDir, titleName, "VIDEO_TS")

	layout := DiscLayout{Root: videoTS}
	var offset uint64

	vmgSet, next, err := buildTitleSet(videoTS, 0, vmg, offset)
	if err != nil {
		return DiscLayout{}, err
	}
	layout.TitleSets = append(layout.TitleSets, vmgSet)
	offset = next

	for _, spec := range titleSets {
		if spec.Number <= 0 {
			return DiscLayout{}, fmt.Errorf("title set number must be positive, got %d", spec.Number)
		}
		set, next, err := buildTitleSet(videoTS, spec.Number, spec, offset)
		if err != nil {
			return DiscLayout{}, err
		}
		layout.TitleSets = append(layout.TitleSets, set)
		offset = next
	}

	return layout, nil
}

func buildTitleSet(videoTS string, number int, spec TitleSetSpec, offset uint64) (TitleSet, uint64, error) {
	prefix := "VIDEO_TS"
	if number > 0 {
		prefix = fmt.Sprintf("VTS_%02d", number)
	}

	set := TitleSet{Number: number}

	ifoBlocks := spec.IFOBlocks
	set.Files = append(set.Files, OutputFile{
		Kind:           KindInfo,
		DestPath:       filepath.Join(videoTS, prefix+"_0.IFO"),
		DVDOffset:      offset,
		ExpectedBlocks: ifoBlocks,
	})
	if number == 0 {
		set.Files[len(set.Files)-1].DestPath = filepath.Join(videoTS, "VIDEO_TS.IFO")
	}
	offset += ifoBlocks

	set.Files = append(set.Files, OutputFile{
		Kind:           KindBackup,
		DestPath:       filepath.Join(videoTS, prefix+"_0.BUP"),
		DVDOffset:      offset,
		ExpectedBlocks: ifoBlocks,
	})
	if number == 0 {
		set.Files[len(set.Files)-1].DestPath = filepath.Join(videoTS, "VIDEO_TS.BUP")
	}
	offset += ifoBlocks

	if number == 0 {
		return set, offset, nil
	}

	if spec.MenuBlocks > 0 {
		set.Files = append(set.Files, OutputFile{
			Kind:           KindMenuVOB,
			DestPath:       filepath.Join(videoTS, fmt.Sprintf("%s_0.VOB", prefix)),
			DVDOffset:      offset,
			ExpectedBlocks: spec.MenuBlocks,
		})
		offset += spec.MenuBlocks
	}

	if spec.VOBParts > 9 {
		return TitleSet{}, 0, fmt.Errorf("title set %d: at most 9 VOB parts, got %d", number, spec.VOBParts)
	}
	if len(spec.PartBlocks) != 0 && len(spec.PartBlocks) != spec.VOBParts {
		return TitleSet{}, 0, fmt.Errorf("title set %d: PartBlocks length %d does not match VOBParts %d", number, len(spec.PartBlocks), spec.VOBParts)
	}

	for i := 1; i <= spec.VOBParts; i++ {
		blocks := MaxVOBBlocks
		if len(spec.PartBlocks) != 0 {
			blocks = int(spec.PartBlocks[i-1])
		}
		set.Files = append(set.Files, OutputFile{
			Kind:           KindTitleVOB,
			DestPath:       filepath.Join(videoTS, fmt.Sprintf("%s_%d.VOB", prefix, i)),
			DVDOffset:      offset,
			ExpectedBlocks: uint64(blocks),
		})
		offset += uint64(blocks)
	}

	return set, offset, nil
}
