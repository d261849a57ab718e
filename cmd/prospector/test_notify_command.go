package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prospector/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Notifications.NtfyTopic == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications disabled: notifications.ntfy_topic is not set")
				return nil
			}
			notifier := notifications.NewService(notifications.Options{
				Topic:          cfg.Notifications.NtfyTopic,
				RequestTimeout: time.Duration(cfg.Notifications.RequestTimeout) * time.Second,
			})
			if err := notifier.TestNotification(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
