// Package gapmap accumulates unread sector ranges across an entire rip run
// and renders them as a fixed-size ASCII spiral, giving a quick visual
// sense of where a damaged disc's unreadable regions cluster.
package gapmap

import (
	"strings"
)

const (
	rows      = 20
	cols      = 60
	innerTurn = 192
	outerTurn = 432
)

// Entry is one gap range in the accumulator's global coordinate space.
type Entry struct {
	GlobalStart uint64
	BlockCount  uint64
}

// Accumulator records gap entries across every file processed in a rip run,
// advancing its global coordinate space by each file's expected block
// count. It is append-only and single-threaded: the copy orchestrator owns
// it for the lifetime of one run.
type Accumulator struct {
	entries     []Entry
	totalBlocks uint64
	base        uint64
}

// New returns an empty accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// BeginFile returns the global base offset the caller should use for the
// file about to be processed, then reserves expectedBlocks of coordinate
// space for it.
func (a *Accumulator) BeginFile(expectedBlocks uint64) uint64 {
	base := a.base
	a.base += expectedBlocks
	a.totalBlocks += expectedBlocks
	return base
}

// AddGap records a gap range local to the current file at globalBase.
func (a *Accumulator) AddGap(globalBase, start, count uint64) {
	if count == 0 {
		return
	}
	a.entries = append(a.entries, Entry{GlobalStart: globalBase + start, BlockCount: count})
}

// AddTruncatedTail records the file's truncated-tail range, expressed the
// same way as any other gap.
func (a *Accumulator) AddTruncatedTail(globalBase, existingBlocks, missing uint64) {
	a.AddGap(globalBase, existingBlocks, missing)
}

// Entries returns every recorded gap in global coordinates.
func (a *Accumulator) Entries() []Entry {
	return a.entries
}

// TotalBlocks returns the sum of every file's expected block count seen so
// far.
func (a *Accumulator) TotalBlocks() uint64 {
	return a.totalBlocks
}

// Render produces the fixed 20x60 ASCII spiral grid described by the disc
// map: row is the interpolated radial band, column the angular position
// within that band's turn length. Marked cells print '#', unmarked '.'.
func (a *Accumulator) Render() string {
	var grid [rows][cols]bool

	if a.totalBlocks > 0 {
		for _, e := range a.entries {
			step := e.BlockCount / 31
			if step < 1 {
				step = 1
			}
			for offset := uint64(0); offset < e.BlockCount; offset += step {
				markBlock(&grid, e.GlobalStart+offset, a.totalBlocks)
			}
		}
	}

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.WriteByte('|')
		for c := 0; c < cols; c++ {
			if grid[r][c] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('|')
		sb.WriteByte('\n')
	}
	return sb.String()
}

func markBlock(grid *[rows][cols]bool, globalBlock, totalBlocks uint64) {
	row := (globalBlock * rows) / totalBlocks
	if row > rows-1 {
		row = rows - 1
	}

	turn := innerTurn + ((outerTurn-innerTurn)*int(row))/(rows-1)
	col := (globalBlock % uint64(turn)) * cols / uint64(turn)
	if col > cols-1 {
		col = cols - 1
	}

	grid[row][col] = true
}
