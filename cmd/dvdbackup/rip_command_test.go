package main

import (
	"testing"

	"dvdbackup/internal/config"
	"dvdbackup/internal/fillexec"
)

func TestBuildCopyOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GapFill.Strategy = "reverse"
	cfg.GapFill.ErrorPolicy = "abort"
	cfg.GapFill.SampleCount = 16

	opts, err := buildCopyOptions(&cfg, ripFlags{
		gaps:        true,
		gapStrategy: "random",
		errorPolicy: "skip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Strategy != fillexec.Random {
		t.Fatalf("expected flag strategy to win, got %v", opts.Strategy)
	}
	if opts.ErrorPolicy != fillexec.SkipBlock {
		t.Fatalf("expected flag error policy to win, got %v", opts.ErrorPolicy)
	}
	if opts.SampleCount != 16 {
		t.Fatalf("expected sample count from config, got %d", opts.SampleCount)
	}
}

func TestBuildCopyOptionsFallsBackToConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GapFill.Strategy = "outside-in"
	cfg.GapFill.ErrorPolicy = "skip-multiblock"

	opts, err := buildCopyOptions(&cfg, ripFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Strategy != fillexec.OutsideIn {
		t.Fatalf("expected config strategy, got %v", opts.Strategy)
	}
	if opts.ErrorPolicy != fillexec.SkipMultiblock {
		t.Fatalf("expected config error policy, got %v", opts.ErrorPolicy)
	}
}

func TestBuildCopyOptionsRejectsUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	_, err := buildCopyOptions(&cfg, ripFlags{gapStrategy: "sideways"})
	if err == nil {
		t.Fatal("expected error for unknown gap strategy")
	}
}
