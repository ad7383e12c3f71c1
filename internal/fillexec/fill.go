// Package fillexec walks a gap plan and writes the missing sectors it
// describes, in a caller-selected order, applying a read-error policy when
// the disc returns fewer blocks than requested.
package fillexec

import (
	"errors"
	"fmt"
	"os"

	"dvdbackup/internal/blockio"
	"dvdbackup/internal/discio"
	"dvdbackup/internal/gapplan"
)

// Strategy selects the order in which the executor attempts plan segments.
type Strategy int

const (
	Forward Strategy = iota
	Reverse
	OutsideIn
	Random
)

func (s Strategy) String() string {
	switch s {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case OutsideIn:
		return "outside-in"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a CLI/config strategy name to a Strategy value.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "forward":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	case "outside-in":
		return OutsideIn, nil
	case "random":
		return Random, nil
	default:
		return Forward, fmt.Errorf("unknown gap-fill strategy %q", name)
	}
}

// ErrorPolicy controls how the executor reacts to a short or failed read.
type ErrorPolicy int

const (
	Abort ErrorPolicy = iota
	SkipBlock
	SkipMultiblock
)

// ParseErrorPolicy maps a CLI/config policy name to an ErrorPolicy value.
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch name {
	case "", "abort":
		return Abort, nil
	case "skip":
		return SkipBlock, nil
	case "skip-multiblock":
		return SkipMultiblock, nil
	default:
		return Abort, fmt.Errorf("unknown read-error policy %q", name)
	}
}

func (p ErrorPolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case SkipBlock:
		return "skip"
	case SkipMultiblock:
		return "skip-multiblock"
	default:
		return "unknown"
	}
}

// ErrAborted is returned when Abort policy encounters a short or failed
// read.
var ErrAborted = errors.New("fill aborted by read-error policy")

// Options configures one Fill invocation.
type Options struct {
	Strategy    Strategy
	ErrorPolicy ErrorPolicy
	RandomSeed  uint32
}

// Result reports how much a Fill call actually wrote.
type Result struct {
	BlocksWritten uint64
}

// segment is one ≤512-block unit of work scheduled by a Strategy.
type segment struct {
	StartBlock uint64
	BlockCount uint64
}

// Fill writes every block described by plan into dst, reading from disc at
// dvdOffset+block, in the order opts.Strategy prescribes. It returns the
// number of blocks actually written even when it returns an error, since a
// partial fill leaves previously written sectors valid.
func Fill(dst *os.File, disc discio.SectorReader, dvdOffset uint64, plan *gapplan.Plan, opts Options) (Result, error) {
	segments := buildSegments(plan, opts.Strategy, opts.RandomSeed)

	buf := blockio.Get()
	defer buf.Release()

	var written uint64
	for _, seg := range segments {
		n, err := fillSegment(dst, disc, dvdOffset, seg, opts.ErrorPolicy, buf)
		written += n
		if err != nil {
			return Result{BlocksWritten: written}, err
		}
	}
	return Result{BlocksWritten: written}, nil
}

func fillSegment(dst *os.File, disc discio.SectorReader, dvdOffset uint64, seg segment, policy ErrorPolicy, buf *blockio.Buffer) (uint64, error) {
	var cursor uint64
	var written uint64

	for cursor < seg.BlockCount {
		chunk := seg.BlockCount - cursor
		readBlock := seg.StartBlock + cursor

		chunkBuf := buf.Slice(int(chunk))
		n, readErr := disc.ReadBlocks(dvdOffset+readBlock, int(chunk), chunkBuf)

		usable := uint64(0)
		if n > 0 {
			usable = uint64(n)
		}

		if usable > 0 {
			if err := writeBlocks(dst, readBlock, chunkBuf[:usable*discio.SectorSize]); err != nil {
				return written, fmt.Errorf("write at block %d: %w", readBlock, err)
			}
			written += usable
		}

		if usable == chunk && readErr == nil {
			cursor += usable
			continue
		}

		advance, policyErr := applyPolicy(policy, usable, chunk)
		if policyErr != nil {
			if readErr != nil {
				return written, fmt.Errorf("%w: read error at block %d: %v", policyErr, readBlock, readErr)
			}
			return written, fmt.Errorf("%w: short read at block %d", policyErr, readBlock)
		}
		cursor += advance
	}

	return written, nil
}

// applyPolicy decides how far the segment cursor advances after a chunk
// yielded fewer than chunk blocks. usable and chunk are both expressed
// relative to the current attempt; chunk always equals the segment's
// remaining block count, so every returned advance is implicitly bounded
// by it.
func applyPolicy(policy ErrorPolicy, usable, chunk uint64) (uint64, error) {
	switch policy {
	case Abort:
		return 0, ErrAborted
	case SkipBlock:
		return usable + 1, nil
	case SkipMultiblock:
		return chunk, nil
	default:
		return 0, fmt.Errorf("unknown read-error policy %d", policy)
	}
}

func writeBlocks(dst *os.File, startBlock uint64, data []byte) error {
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
