package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/reload"
)

// reloadInterval prefers the --reload-interval flag over catalog.reload_interval.
func reloadInterval(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("reload-interval") {
		d, _ := cmd.Flags().GetDuration("reload-interval")
		return d
	}
	return viper.GetDuration("catalog.reload_interval")
}

// startReloader loads the catalog in the background, then again on every
// tick and every SIGHUP until ctx is done.
func startReloader(ctx context.Context, e *engine.Engine, src catalog.Source, interval time.Duration) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	trigger := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}
	}()

	if interval > 0 {
		utils.Log.Infof("Reloading %s every %s (send SIGHUP to reload now)", src.Name(), interval)
	}

	go reload.Run(ctx, reload.Config{
		Interval: interval,
		Trigger:  trigger,
		Reload: func(ctx context.Context) error {
			_, err := e.LoadCatalog(ctx, src)
			return err
		},
		Log: utils.Log,
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
