package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"crop-doctor/config"
	telegram "crop-doctor/internal/api"
)

func newBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.TelegramToken == "" {
				return errors.New(config.EnvTelegramToken + " is required")
			}

			bot, err := telegram.NewBot(a.cfg.TelegramToken, a.services)
			if err != nil {
				return err
			}

			slog.Info("Bot is running")
			return bot.Run(cmd.Context())
		},
	}
}
