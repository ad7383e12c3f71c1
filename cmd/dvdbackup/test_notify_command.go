package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dvdbackup/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test ntfy notification using the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			notifier := notifications.NewService(cfg)
			if err := notifier.TestNotification(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}

			if !cfg.Notifications.Enabled || strings.TrimSpace(cfg.Notifications.Topic) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications are disabled or no ntfy topic is configured; nothing was sent")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
