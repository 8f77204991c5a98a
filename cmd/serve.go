package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve price lookups over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		if !cmd.Flags().Changed("listen") {
			listenAddr = viper.GetString("server.listen")
		}

		e, src, err := newEngine()
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		startReloader(ctx, e, src, reloadInterval(cmd))

		srv := server.New(e, func(ctx context.Context) (int, error) {
			return e.LoadCatalog(ctx, src)
		})
		return srv.Start(ctx, listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().Duration("reload-interval", 0, "Time between catalog reloads, 0 to disable (default from config)")
}
