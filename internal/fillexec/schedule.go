package fillexec

import (
	"dvdbackup/internal/blockio"
	"dvdbackup/internal/gapplan"
)

func buildSegments(plan *gapplan.Plan, strategy Strategy, seed uint32) []segment {
	ranges := plan.Ranges()
	var segments []segment

	switch strategy {
	case Reverse:
		for _, r := range ranges {
			segments = append(segments, reverseSegments(r)...)
		}
	case OutsideIn:
		for _, r := range ranges {
			segments = append(segments, outsideInSegments(r)...)
		}
	case Random:
		for _, r := range ranges {
			segments = append(segments, frontAlignedSegments(r)...)
		}
		shuffle(segments, seed)
	default: // Forward
		for _, r := range ranges {
			segments = append(segments, frontAlignedSegments(r)...)
		}
	}

	return segments
}

// frontAlignedSegments splits r into ≤512-block chunks starting from its
// head, used by Forward and as the natural chunking Random shuffles.
func frontAlignedSegments(r gapplan.Range) []segment {
	var segments []segment
	var processed uint64
	for processed < r.BlockCount {
		chunk := r.BlockCount - processed
		if chunk > blockio.MaxChunkBlocks {
			chunk = blockio.MaxChunkBlocks
		}
		segments = append(segments, segment{StartBlock: r.StartBlock + processed, BlockCount: chunk})
		processed += chunk
	}
	return segments
}

// reverseSegments splits r into ≤512-block chunks anchored at its tail,
// yielded tail-first: the first segment covers the last chunk-sized span of
// the range, the last segment covers whatever remains at the head.
func reverseSegments(r gapplan.Range) []segment {
	var segments []segment
	var processed uint64
	end := r.End()
	for processed < r.BlockCount {
		chunk := r.BlockCount - processed
		if chunk > blockio.MaxChunkBlocks {
			chunk = blockio.MaxChunkBlocks
		}
		start := end - processed - chunk
		segments = append(segments, segment{StartBlock: start, BlockCount: chunk})
		processed += chunk
	}
	return segments
}

// outsideInSegments alternates a chunk from the front of r with a chunk
// from the back until the two cursors meet.
func outsideInSegments(r gapplan.Range) []segment {
	var segments []segment
	front := r.StartBlock
	back := r.End()

	for front < back {
		frontChunk := back - front
		if frontChunk > blockio.MaxChunkBlocks {
			frontChunk = blockio.MaxChunkBlocks
		}
		segments = append(segments, segment{StartBlock: front, BlockCount: frontChunk})
		front += frontChunk
		if front >= back {
			break
		}

		backChunk := back - front
		if backChunk > blockio.MaxChunkBlocks {
			backChunk = blockio.MaxChunkBlocks
		}
		segments = append(segments, segment{StartBlock: back - backChunk, BlockCount: backChunk})
		back -= backChunk
	}

	return segments
}

// lcg is the linear congruential generator specified for deterministic
// Random fill order: next = state*1103515245 + 12345 (mod 2^31).
type lcg struct {
	state uint32
}

func newLCG(seed uint32) *lcg {
	return &lcg{state: seed}
}

func (l *lcg) next() uint32 {
	l.state = (l.state*1103515245 + 12345) & 0x7FFFFFFF
	return l.state
}

// draw returns bits 16..30 of the generator's next value, a 15-bit draw
// used for the Fisher-Yates index selection.
func (l *lcg) draw() uint32 {
	return (l.next() >> 16) & 0x7FFF
}

// shuffle performs an in-place Fisher-Yates shuffle of segments using the
// specified LCG, seeded once per call.
func shuffle(segments []segment, seed uint32) {
	rng := newLCG(seed)
	for i := len(segments) - 1; i > 0; i-- {
		j := int(rng.draw()) % (i + 1)
		segments[i], segments[j] = segments[j], segments[i]
	}
}
