package gapplan

import "testing"

func TestAddCoalescesAdjacentRanges(t *testing.T) {
	p := New()
	p.Add(3, 2) // [3,5)
	p.Add(5, 1) // adjacent, merges to [3,6)

	got := p.Ranges()
	if len(got) != 1 {
		t.Fatalf("expected 1 range, got %d: %v", len(got), got)
	}
	if got[0] != (Range{StartBlock: 3, BlockCount: 3}) {
		t.Fatalf("unexpected merged range: %+v", got[0])
	}
}

func TestAddCoalescesOverlappingRanges(t *testing.T) {
	p := New()
	p.Add(0, 10)
	p.Add(5, 20) // overlaps, should extend to [0,25)

	got := p.Ranges()
	if len(got) != 1 || got[0].End() != 25 {
		t.Fatalf("expected merged [0,25), got %v", got)
	}
}

func TestAddKeepsDisjointNonAdjacentRangesSeparate(t *testing.T) {
	p := New()
	p.Add(0, 2) // [0,2)
	p.Add(3, 2) // gap at block 2, must stay separate ([2,3) is missing)

	got := p.Ranges()
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(got), got)
	}
}

func TestAddZeroCountIsNoOp(t *testing.T) {
	p := New()
	p.Add(5, 0)
	if !p.Empty() {
		t.Fatal("expected plan to remain empty")
	}
}

func TestContains(t *testing.T) {
	p := New()
	p.Add(10, 5)  // [10,15)
	p.Add(20, 10) // [20,30)

	cases := map[uint64]bool{
		5:  false,
		10: true,
		14: true,
		15: false,
		19: false,
		20: true,
		29: true,
		30: false,
	}
	for block, want := range cases {
		if got := p.Contains(block); got != want {
			t.Errorf("Contains(%d) = %v, want %v", block, got, want)
		}
	}
}

func TestTotalBlocks(t *testing.T) {
	p := New()
	p.Add(0, 5)
	p.Add(10, 3)
	if got := p.TotalBlocks(); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestSortednessAndDisjointnessInvariant(t *testing.T) {
	p := New()
	p.Add(0, 3)
	p.Add(3, 0) // no-op
	p.Add(5, 2)
	p.Add(10, 1)

	ranges := p.Ranges()
	for i := 1; i < len(ranges); i++ {
		prev, cur := ranges[i-1], ranges[i]
		if prev.End() >= cur.StartBlock {
			t.Fatalf("ranges not disjoint/non-adjacent: %+v then %+v", prev, cur)
		}
		if prev.BlockCount == 0 {
			t.Fatalf("empty range present: %+v", prev)
		}
	}
}
