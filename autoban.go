package main

import (
	"fmt"
	"strings"

	"botswatter/database"
	"botswatter/handlers"

	"github.com/spf13/cobra"
)

func autobanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autoban",
		Short: "Edit a guild's autoban phrases and monitored channels in the policy store",
	}
	cmd.PersistentFlags().String("guild", "", "ID of the guild to edit")
	cmd.MarkPersistentFlagRequired("guild")

	cmd.AddCommand(autobanSubCmd("add <phrase...>", "Add an autoban phrase", cobra.MinimumNArgs(1)))
	cmd.AddCommand(autobanSubCmd("remove <phrase...>", "Remove an autoban phrase", cobra.MinimumNArgs(1)))
	cmd.AddCommand(autobanSubCmd("list", "List autoban phrases", cobra.NoArgs))
	cmd.AddCommand(autobanSubCmd("channel <channel-id>", "Toggle monitoring of a channel", cobra.ExactArgs(1)))
	return cmd
}

func autobanSubCmd(use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, _ := cmd.Flags().GetString("guild")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := database.Open(cmd.Context(), cfg.Policy)
			if err != nil {
				return fmt.Errorf("error opening policy store: %w", err)
			}
			defer store.Close()

			reply, err := handlers.RunAutoban(cmd.Context(), store, guildID, cmd.Name(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
}
