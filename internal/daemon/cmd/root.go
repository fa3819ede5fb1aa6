// Package cmd implements the chargewatchd command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/buildinfo"
	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/daemon"
	"github.com/chargewatch/chargewatch/internal/daemon/tray"
	"github.com/chargewatch/chargewatch/internal/logging"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

const stopTimeout = 5 * time.Second

var foreground bool

var rootCmd = &cobra.Command{
	Use:           "chargewatchd",
	Short:         "Battery charge monitor daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground without the system tray")
}

// Execute runs the daemon command line.
func Execute() error {
	return rootCmd.Execute()
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	logFile, err := config.GlobalDaemonLogFile()
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(logFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	info, err := config.RunningDaemon()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if info != nil {
		return fmt.Errorf("daemon already running (PID %d, %s mode)", info.PID, info.Mode)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	d := daemon.New(settings, battery.NewSystem(), notify.NewDesktop(), logger)

	if foreground {
		logger.Info("running in foreground mode (no system tray)")
		return runForeground(cmd.Context(), d, logger)
	}
	logger.Info("running in background mode (with system tray)")
	return runWithTray(cmd.Context(), d, logger)
}

// runForeground runs the daemon without a system tray, blocking on signals.
func runForeground(ctx context.Context, d *daemon.Daemon, logger *zap.Logger) error {
	if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), models.ModeForeground, buildinfo.Version)); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer cleanup(logger)

	d.Start(ctx)
	logger.Info("daemon started", zap.Int("pid", os.Getpid()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
	case <-d.ShutdownRequested():
	}

	d.Stop(stopTimeout)
	fmt.Println("Daemon stopped")
	return nil
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(ctx context.Context, d *daemon.Daemon, logger *zap.Logger) error {
	var startErr error

	onStart := func() {
		if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), models.ModeTray, buildinfo.Version)); err != nil {
			startErr = fmt.Errorf("failed to write daemon info: %w", err)
			tray.Quit()
			return
		}

		d.OnReading = tray.UpdateBattery
		d.OnPauseChange = tray.RefreshStatus
		d.Start(ctx)
		logger.Info("daemon started", zap.Int("pid", os.Getpid()))

		// Quit the tray on SIGINT/SIGTERM or on the Quit menu item
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
			case <-d.ShutdownRequested():
			}
			tray.Quit()
		}()
	}

	onExit := func() {
		d.Stop(stopTimeout)
		cleanup(logger)
		fmt.Println("Daemon stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(d, logger, onStart, onExit)
	return startErr
}

func cleanup(logger *zap.Logger) {
	if err := config.RemoveDaemonInfo(); err != nil {
		logger.Warn("failed to remove daemon info", zap.Error(err))
	}
}
