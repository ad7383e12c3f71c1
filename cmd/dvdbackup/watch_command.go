package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dvdbackup/internal/discio"
	"dvdbackup/internal/discwatch"
	"dvdbackup/internal/logging"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags ripFlags

	cmd := &cobra.Command{
		Use:   "watch <device> <targetdir>",
		Short: "Wait for a disc insertion on device and rip it automatically, repeating until interrupted",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, ctx, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.gaps, "gaps", true, "Scan an existing partial copy and fill only its gaps")
	cmd.Flags().StringVar(&flags.gapStrategy, "gap-strategy", "", "Gap-fill order: forward, reverse, outside-in, random")
	cmd.Flags().Uint32Var(&flags.gapRandomSeed, "gap-random-seed", 0, "Seed for --gap-strategy random")
	cmd.Flags().BoolVar(&flags.gapMap, "gap-map", false, "Render an ASCII gap map at the end of each run")
	cmd.Flags().StringVar(&flags.errorPolicy, "error", "", "Read-error policy: abort, skip, skip-multiblock")
	cmd.Flags().StringVar(&flags.titleName, "title-name", "UNKNOWN", "Directory name to create under targetdir")
	cmd.Flags().StringVar(&flags.titleSets, "title-sets", "", "Comma-separated title set numbers to copy, e.g. 1,2")
	cmd.Flags().StringVar(&flags.vobParts, "vob-parts", "", "Comma-separated VOB part counts, one per --title-sets entry")
	cmd.Flags().Uint64Var(&flags.ifoBlocks, "ifo-blocks", 32, "Expected block count for each title set's IFO/BUP pair")
	cmd.Flags().Uint64Var(&flags.menuBlocks, "menu-blocks", 0, "Expected block count for each title set's menu VOB (0 to skip)")
	cmd.Flags().Uint64Var(&flags.vmgIFOBlocks, "vmg-ifo-blocks", 32, "Expected block count for VIDEO_TS.IFO/BUP")
	cmd.Flags().BoolVar(&flags.auditLog, "audit-log", false, "Record each run in the SQLite audit log, overriding config")
	cmd.Flags().BoolVar(&flags.ejectOnSuccess, "eject-on-success", true, "Eject the drive tray when a run completes with no failures")

	return cmd
}

func runWatch(cmd *cobra.Command, ctx *commandContext, device, targetDir string, flags ripFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logging.NewComponentLogger(logger, "watch")

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	monitor := discwatch.New(cfg, logger, func(discCtx context.Context, event discwatch.DiscInsertedEvent) error {
		log.Info("disc inserted, starting rip", logging.String("device", event.Device))
		if _, err := discio.WaitForReady(discCtx, event.Device); err != nil {
			log.Warn("drive did not report ready", logging.Error(err))
			return err
		}
		if err := runRip(cmd, ctx, event.Device, targetDir, flags); err != nil {
			log.Warn("watch-triggered rip failed", logging.Error(err))
		}
		return nil
	})
	if monitor == nil {
		return fmt.Errorf("no drive device configured to watch")
	}

	if err := monitor.Start(signalCtx); err != nil {
		return fmt.Errorf("start disc watcher: %w", err)
	}
	defer monitor.Stop()

	log.Info("watching for disc insertions", logging.String("device", device), logging.String("target_dir", targetDir))
	<-signalCtx.Done()
	log.Info("watch stopped")
	return nil
}
