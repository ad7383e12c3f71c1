package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dvdbackup/internal/config"
	"dvdbackup/internal/copyengine"
	"dvdbackup/internal/discio"
	"dvdbackup/internal/fillexec"
	"dvdbackup/internal/gapmap"
	"dvdbackup/internal/layout"
	"dvdbackup/internal/logging"
	"dvdbackup/internal/notifications"
	"dvdbackup/internal/preflight"
	"dvdbackup/internal/report"
)

type ripFlags struct {
	gaps           bool
	noOverwrite    bool
	gapStrategy    string
	gapRandomSeed  uint32
	compare        bool
	gapMap         bool
	errorPolicy    string
	titleName      string
	titleSets      string
	vobParts       string
	ifoBlocks      uint64
	menuBlocks     uint64
	vmgIFOBlocks   uint64
	auditLog       bool
	ejectOnSuccess bool
}

func newRipCommand(ctx *commandContext) *cobra.Command {
	var flags ripFlags

	cmd := &cobra.Command{
		Use:   "rip <device> <targetdir>",
		Short: "Copy a DVD-Video disc to a target directory, filling any gaps left by a damaged read",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRip(cmd, ctx, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.gaps, "gaps", false, "Scan an existing partial copy and fill only its gaps")
	cmd.Flags().BoolVar(&flags.noOverwrite, "no-overwrite", false, "Refuse to truncate existing files outside --gaps mode")
	cmd.Flags().StringVar(&flags.gapStrategy, "gap-strategy", "", "Gap-fill order: forward, reverse, outside-in, random")
	cmd.Flags().Uint32Var(&flags.gapRandomSeed, "gap-random-seed", 0, "Seed for --gap-strategy random")
	cmd.Flags().BoolVar(&flags.compare, "compare", false, "Verify an existing copy against the disc without writing")
	cmd.Flags().BoolVar(&flags.gapMap, "gap-map", false, "Render an ASCII gap map at the end of the run")
	cmd.Flags().StringVar(&flags.errorPolicy, "error", "", "Read-error policy: abort, skip, skip-multiblock")
	cmd.Flags().StringVar(&flags.titleName, "title-name", "UNKNOWN", "Directory name to create under targetdir")
	cmd.Flags().StringVar(&flags.titleSets, "title-sets", "", "Comma-separated title set numbers to copy, e.g. 1,2")
	cmd.Flags().StringVar(&flags.vobParts, "vob-parts", "", "Comma-separated VOB part counts, one per --title-sets entry")
	cmd.Flags().Uint64Var(&flags.ifoBlocks, "ifo-blocks", 32, "Expected block count for each title set's IFO/BUP pair")
	cmd.Flags().Uint64Var(&flags.menuBlocks, "menu-blocks", 0, "Expected block count for each title set's menu VOB (0 to skip)")
	cmd.Flags().Uint64Var(&flags.vmgIFOBlocks, "vmg-ifo-blocks", 32, "Expected block count for VIDEO_TS.IFO/BUP")
	cmd.Flags().BoolVar(&flags.auditLog, "audit-log", false, "Record this run in the SQLite audit log, overriding config")
	cmd.Flags().BoolVar(&flags.ejectOnSuccess, "eject-on-success", false, "Eject the drive tray when the run completes with no failures")

	return cmd
}

func runRip(cmd *cobra.Command, ctx *commandContext, device, targetDir string, flags ripFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logging.NewComponentLogger(logger, "rip")

	opts, err := buildCopyOptions(cfg, flags)
	if err != nil {
		return err
	}

	titleSetSpecs, err := buildTitleSetSpecs(flags.titleSets, flags.vobParts, flags.ifoBlocks, flags.menuBlocks)
	if err != nil {
		return err
	}

	runCtx := context.Background()

	effective := *cfg
	effective.Drive.Device = device
	effective.Paths.TargetDir = targetDir
	for _, result := range preflight.RunAll(runCtx, &effective) {
		if !result.Passed {
			log.Warn("preflight check failed", logging.String("check", result.Name), logging.String("detail", result.Detail))
		}
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	lockPath := filepath.Join(targetDir, ".dvdbackup.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("another rip is already in progress in %s (lock file %s)", targetDir, lockPath)
	}
	defer lock.Unlock()

	disc, err := discio.OpenSectorReader(device)
	if err != nil {
		return fmt.Errorf("open device %s: %w", device, err)
	}
	defer disc.Close()

	discLayout, err := layout.Discover(targetDir, flags.titleName, layout.TitleSetSpec{IFOBlocks: flags.vmgIFOBlocks}, titleSetSpecs)
	if err != nil {
		return fmt.Errorf("build disc layout: %w", err)
	}
	if err := os.MkdirAll(discLayout.Root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", discLayout.Root, err)
	}

	notifier := notifications.NewService(cfg)
	_ = notifier.NotifyRunStarted(runCtx, device, targetDir)

	runID := uuid.NewString()
	startedAt := time.Now()

	accumulator := gapmap.New()
	reports := copyengine.Run(disc, discLayout, accumulator, opts)

	for _, rep := range reports {
		var mismatch *copyengine.MismatchError
		if errors.As(rep.Err, &mismatch) {
			if err := notifier.NotifyVerificationMismatch(runCtx, mismatch.FilePath, mismatch.Sector); err != nil {
				log.Warn("failed to send verification mismatch notification", logging.Error(err))
			}
		}
	}

	summary := report.RunSummary{
		RunID:       runID,
		Device:      device,
		TargetDir:   targetDir,
		Strategy:    opts.Strategy.String(),
		ErrorPolicy: opts.ErrorPolicy.String(),
		StartedAt:   startedAt,
		FinishedAt:  time.Now(),
		Files:       reports,
	}
	if flags.gapMap {
		summary.GapMap = accumulator.Render()
	}

	out := cmd.OutOrStdout()
	if report.ShouldColorize(os.Stdout) {
		fmt.Fprintln(out, report.RenderFileTable(reports))
	} else {
		for _, rep := range reports {
			fmt.Fprintln(out, report.FileLine(rep))
		}
	}
	fmt.Fprintln(out, report.SummaryLine(summary))
	if summary.GapMap != "" {
		fmt.Fprintln(out, summary.GapMap)
	}

	if err := recordAuditLog(runCtx, cfg, flags, summary); err != nil {
		log.Warn("failed to record audit log", logging.Error(err))
	}

	_ = notifier.NotifyRunCompleted(runCtx, targetDir, summary.FilesFailed(), summary.Duration())

	ejectOnSuccess := flags.ejectOnSuccess || (cfg != nil && cfg.GapFill.EjectOnSuccess)
	if ejectOnSuccess && summary.FilesFailed() == 0 {
		if err := discio.NewEjector().Eject(runCtx, device); err != nil {
			log.Warn("eject failed", logging.Error(err))
		}
	}

	if summary.FilesFailed() > 0 {
		return fmt.Errorf("%d file(s) failed", summary.FilesFailed())
	}
	return nil
}

func buildCopyOptions(cfg *config.Config, flags ripFlags) (copyengine.Options, error) {
	strategyName := flags.gapStrategy
	if strategyName == "" && cfg != nil {
		strategyName = cfg.GapFill.Strategy
	}
	strategy, err := fillexec.ParseStrategy(strategyName)
	if err != nil {
		return copyengine.Options{}, err
	}

	policyName := flags.errorPolicy
	if policyName == "" && cfg != nil {
		policyName = cfg.GapFill.ErrorPolicy
	}
	policy, err := fillexec.ParseErrorPolicy(policyName)
	if err != nil {
		return copyengine.Options{}, err
	}

	sampleCount := 0
	if cfg != nil {
		sampleCount = cfg.GapFill.SampleCount
	}

	seed := flags.gapRandomSeed
	if seed == 0 && cfg != nil {
		seed = cfg.GapFill.RandomSeed
	}

	noOverwrite := flags.noOverwrite || (cfg != nil && cfg.GapFill.NoOverwrite)

	return copyengine.Options{
		GapFill:     flags.gaps,
		Compare:     flags.compare,
		NoOverwrite: noOverwrite,
		Strategy:    strategy,
		ErrorPolicy: policy,
		RandomSeed:  seed,
		SampleCount: sampleCount,
	}, nil
}
