package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"botswatter/platform"
	"botswatter/scanner"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

func purgeImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge-images",
		Short: "Delete every message with an image in a channel over REST and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			channelID, _ := cmd.Flags().GetString("channel")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.BotToken == "" {
				return fmt.Errorf("no bot token provided, set BOT_TOKEN")
			}

			s, err := discordgo.New("Bot " + cfg.BotToken)
			if err != nil {
				return fmt.Errorf("error creating Discord session: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sweeper := scanner.New(platform.NewClient(s, platform.FromConfig(cfg.Platform)))
			fmt.Fprintf(cmd.OutOrStdout(), "Purging images in channel %s...\n", channelID)
			report, err := sweeper.Sweep(ctx, channelID)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", report.RunID)
			fmt.Fprintf(out, "Scanned:  %d\n", report.Scanned)
			fmt.Fprintf(out, "Deleted:  %d\n", report.Deleted)
			fmt.Fprintf(out, "Skipped:  %d\n", report.Skipped)
			fmt.Fprintf(out, "Aborted:  %v\n", report.Aborted)
			fmt.Fprintf(out, "Duration: %s\n", report.Duration.Round(time.Millisecond))
			return err
		},
	}

	cmd.Flags().String("channel", "", "ID of the channel to purge")
	cmd.MarkFlagRequired("channel")
	return cmd
}
