package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/seliv/sysvitals/internal/config"
	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/logger"
	"codeberg.org/seliv/sysvitals/internal/metrics"
	"codeberg.org/seliv/sysvitals/internal/pidfile"
	"codeberg.org/seliv/sysvitals/internal/prefs"
	"codeberg.org/seliv/sysvitals/internal/scheduler"
	"codeberg.org/seliv/sysvitals/internal/smc"
)

var (
	cfg   *config.Config
	store *prefs.Store
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
		logger.SetLogLevel(level)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pidfile.Write(); err != nil {
		fatal(err, "failed to write PID file")
	}
	defer func() {
		if err := pidfile.Remove(); err != nil {
			logError(err, "failed to remove PID file")
		}
	}()

	var err error
	store, err = prefs.Open(cfg.PrefsDB)
	if err != nil {
		fatal(err, "failed to open preferences store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logError(err, "failed to close preferences store")
		}
	}()

	interval := resolveInterval()
	logger.Debug().Int("scale", resolveScale()).Msg("Display scale resolved")

	// A missing firmware channel only degrades the temperature source;
	// everything else samples normally.
	channel, err := smc.Open()
	if err != nil {
		logger.Warn().Err(err).Msg("firmware sensor channel unavailable")
		channel = nil
	} else {
		defer func() {
			if err := channel.Close(); err != nil {
				logError(err, "failed to release firmware channel")
			}
		}()
	}

	sched := scheduler.New(scheduler.DefaultReaders(channel), interval)

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Logging sampled metrics...")
		sched.OnPublish = logSnapshot
		sched.SetVisible(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := sched.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}

	logger.Info().Msg("Exiting...")
}

// resolveInterval reconciles the persisted interval preference with the
// configured one: an explicitly configured value wins and is written
// through; otherwise the stored preference applies.
func resolveInterval() int {
	stored, err := store.IntervalSec()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read interval preference")
		return cfg.Interval
	}

	if cfg.IntervalSet {
		if err := store.SetIntervalSec(cfg.Interval); err != nil {
			logger.Warn().Err(err).Msg("failed to persist interval preference")
		}
		return cfg.Interval
	}

	return scheduler.ClampIntervalSec(stored)
}

// resolveScale follows the same reconciliation rule for the display
// scale the presentation layer reads back from the store.
func resolveScale() int {
	stored, err := store.Scale()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read scale preference")
		return cfg.Scale
	}

	if cfg.ScaleSet {
		if err := store.SetScale(cfg.Scale); err != nil {
			logger.Warn().Err(err).Msg("failed to persist scale preference")
		}
		return cfg.Scale
	}

	return stored
}

// fatal logs and exits, surfacing the error code when one is attached.
func fatal(err error, msg string) {
	var coded errors.Error
	if errors.As(err, &coded) {
		logger.FatalWithCode(coded).Msg(msg)
		return
	}
	logger.Fatal().Err(err).Msg(msg)
}

func logError(err error, msg string) {
	var coded errors.Error
	if errors.As(err, &coded) {
		logger.ErrorWithCode(coded).Msg(msg)
		return
	}
	logger.Error().Err(err).Msg(msg)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func logSnapshot(snap metrics.Snapshot) {
	event := logger.Info().
		Float64("cpu_percent", snap.CPU.Percent).
		Float64("ram_percent", snap.Memory.Percent).
		Uint64("storage_free", snap.Storage.FreeBytes).
		Float64("net_in_bps", snap.Network.InBytesPerSec).
		Float64("net_out_bps", snap.Network.OutBytesPerSec).
		Str("thermal", snap.Thermal.Label).
		Str("uptime", snap.Uptime).
		Str("health", snap.Health)

	if snap.TemperatureC != nil {
		event = event.Float64("temperature_c", *snap.TemperatureC)
	}
	if snap.Battery.Present {
		event = event.Float64("battery_percent", snap.Battery.LevelPercent).
			Bool("charging", snap.Battery.Charging)
	}

	event.Msg("")
}
