package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/sw33tLie/pricebot/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricebot",
	Short: "Look up market item prices from a reloadable catalog.",
	Long: `pricebot answers price lookups against a small market catalog.

It resolves free-text and localized item names, normalizes prices such as
"1.5b" or "250k", and serves the results on the command line, over HTTP,
or as a chat bot.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pricebot.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringP("catalog", "c", "", "Catalog location: JSON file path, http(s) URL or sqlite://path (default market_data.json)")
	rootCmd.PersistentFlags().StringP("aliases", "a", "", "Alias table JSON file, keyed by locale")

	viper.BindPFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("catalog.aliases", rootCmd.PersistentFlags().Lookup("aliases"))
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	// Set default values for all keys
	viper.SetDefault("catalog.source", "market_data.json")
	viper.SetDefault("catalog.aliases", "")
	viper.SetDefault("catalog.reload_interval", "15m")
	viper.SetDefault("bot.token", "")
	viper.SetDefault("bot.prefix", "!")
	viper.SetDefault("server.listen", ":8080")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".pricebot")
		viper.SetConfigType("yaml")
	}

	// BOT_TOKEN -> bot.token, CATALOG_SOURCE -> catalog.source, ...
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.pricebot.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		} else {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
