package verify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dvdbackup/internal/discio/disciotest"
	"dvdbackup/internal/gapplan"
	"dvdbackup/internal/testsupport"
)

func TestSelectSamplesAvoidsPlanRanges(t *testing.T) {
	plan := gapplan.New()
	plan.Add(40, 20) // [40,60)

	samples := SelectSamples(plan, 100, 8)
	for _, s := range samples {
		if plan.Contains(s) {
			t.Fatalf("sample %d falls inside the plan", s)
		}
	}
	if len(samples) == 0 {
		t.Fatal("expected at least one sample")
	}
}

func TestSelectSamplesDedupsAdjacentCollisions(t *testing.T) {
	plan := gapplan.New()
	samples := SelectSamples(plan, 5, 32)
	seen := map[uint64]bool{}
	for i, s := range samples {
		if i > 0 && samples[i-1] == s {
			t.Fatalf("adjacent duplicate sample %d", s)
		}
		seen[s] = true
	}
}

func TestVerifyPassesOnMatchingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VTS_01_1.VOB")
	testsupport.WriteDiscImage(t, path, 20, nil)

	dst, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	disc := disciotest.NewFakeSectorReader(data)

	if err := Verify(dst, disc, 0, []uint64{2, 5, 10}); err != nil {
		t.Fatalf("expected verification to pass, got: %v", err)
	}
}

func TestVerifyFailsOnMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "VTS_01_1.VOB")
	testsupport.WriteDiscImage(t, path, 20, nil)

	dst, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Corrupt the disc's view of block 2 so it disagrees with the destination.
	discData := append([]byte(nil), data...)
	discData[2*2048] ^= 0xFF
	disc := disciotest.NewFakeSectorReader(discData)

	err = Verify(dst, disc, 0, []uint64{2, 5, 10})
	if err == nil {
		t.Fatal("expected verification mismatch")
	}
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError, got %T: %v", err, err)
	}
	if mismatch.Block != 2 {
		t.Fatalf("expected mismatch at block 2, got %d", mismatch.Block)
	}
	if !errors.Is(err, ErrMismatch) {
		t.Fatal("expected errors.Is(err, ErrMismatch) to hold")
	}
}
