package main

import "testing"

func TestBuildTitleSetSpecsEmptyReturnsNil(t *testing.T) {
	specs, err := buildTitleSetSpecs("", "", 32, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if specs != nil {
		t.Fatalf("expected nil specs, got %v", specs)
	}
}

func TestBuildTitleSetSpecsParsesParallelLists(t *testing.T) {
	specs, err := buildTitleSetSpecs("1,2", "2,4", 32, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Number != 1 || specs[0].VOBParts != 2 {
		t.Fatalf("unexpected first spec: %+v", specs[0])
	}
	if specs[1].Number != 2 || specs[1].VOBParts != 4 {
		t.Fatalf("unexpected second spec: %+v", specs[1])
	}
	for _, s := range specs {
		if s.IFOBlocks != 32 || s.MenuBlocks != 200 {
			t.Fatalf("expected uniform ifo/menu blocks, got %+v", s)
		}
	}
}

func TestBuildTitleSetSpecsMismatchedLengthsErrors(t *testing.T) {
	_, err := buildTitleSetSpecs("1,2,3", "1", 32, 0)
	if err == nil {
		t.Fatal("expected error for mismatched --title-sets/--vob-parts lengths")
	}
}

func TestBuildTitleSetSpecsRejectsInvalidNumber(t *testing.T) {
	_, err := buildTitleSetSpecs("abc", "1", 32, 0)
	if err == nil {
		t.Fatal("expected error for non-numeric title set number")
	}
}
