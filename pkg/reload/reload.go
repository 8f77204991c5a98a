package reload

import (
	"context"
	"time"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Config controls when the catalog gets reloaded.
type Config struct {
	// Interval between periodic reloads. Zero disables the ticker.
	Interval time.Duration
	// Trigger requests an immediate reload (e.g. on SIGHUP). Optional.
	Trigger <-chan struct{}
	// Reload performs one load; its error is logged and otherwise ignored.
	Reload func(ctx context.Context) error
	Log    Logger
	// OnCycle is called after every attempt. Optional.
	OnCycle func(Status)
}

// Status describes one reload attempt.
type Status struct {
	StartedAt time.Time
	Duration  time.Duration
	Reason    string
	Err       error
}

// Run reloads once immediately, then on every tick and trigger until ctx is
// done. Reloads never run concurrently with each other.
func Run(ctx context.Context, cfg Config) {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}

	runCycle(ctx, cfg, log, "startup")

	var tick <-chan time.Time
	if cfg.Interval > 0 {
		log.Infof("Reloading catalog every %s", cfg.Interval)
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			runCycle(ctx, cfg, log, "interval")
		case _, ok := <-cfg.Trigger:
			if !ok {
				cfg.Trigger = nil
				continue
			}
			runCycle(ctx, cfg, log, "trigger")
		}
	}
}

func runCycle(ctx context.Context, cfg Config, log Logger, reason string) {
	st := Status{StartedAt: time.Now(), Reason: reason}
	st.Err = cfg.Reload(ctx)
	st.Duration = time.Since(st.StartedAt)
	if st.Err != nil {
		log.Errorf("Catalog reload (%s) failed after %s: %v", reason, st.Duration, st.Err)
	}
	if cfg.OnCycle != nil {
		cfg.OnCycle(st)
	}
}
