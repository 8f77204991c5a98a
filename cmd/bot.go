package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram price bot",
	Long: `Run the Telegram price bot.

The bot token is read from BOT_TOKEN (a .env file in the working directory is
honored) or from bot.token in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("bot.token")
		if token == "" {
			return fmt.Errorf("no bot token: set BOT_TOKEN or bot.token")
		}
		prefix, _ := cmd.Flags().GetString("prefix")
		if !cmd.Flags().Changed("prefix") {
			prefix = viper.GetString("bot.prefix")
		}

		e, src, err := newEngine()
		if err != nil {
			return err
		}

		registry := bot.NewDefaultRegistry(e, prefix, utils.Log)
		tg, err := bot.NewTelegram(token, registry, utils.Log)
		if err != nil {
			return fmt.Errorf("bot login failed: %w", err)
		}

		ctx, stop := signalContext()
		defer stop()

		startReloader(ctx, e, src, reloadInterval(cmd))
		return tg.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.Flags().String("prefix", bot.DefaultPrefix, "Command prefix")
	botCmd.Flags().Duration("reload-interval", 0, "Time between catalog reloads, 0 to disable (default from config)")
}
