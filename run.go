package main

import (
	"botswatter/bot"
	"botswatter/command"
	"botswatter/config"
	"botswatter/handlers"
	"botswatter/models"
	"botswatter/utils"

	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and enforce autoban policy until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return bot.Run(cfg, handlers.Register, command.AllCommands)
		},
	}
}

func loadConfig(cmd *cobra.Command) (*models.Config, error) {
	dirs, err := cmd.Flags().GetStringSlice("config-dir")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(dirs...)
	if err != nil {
		return nil, err
	}
	utils.ConfigureLogging(cfg.Log.Level)
	return cfg, nil
}
