// Package daemon assembles the monitor, pause controller and activity log
// into the running agent.
package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chargewatch/chargewatch/internal/activitylog"
	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/daemon/monitor"
	"github.com/chargewatch/chargewatch/internal/daemon/watcher"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
	"github.com/chargewatch/chargewatch/internal/pause"
)

// Daemon is the running agent.
type Daemon struct {
	settings *models.Settings
	logger   *zap.Logger
	pause    *pause.Controller
	store    *activitylog.Store
	monitor  *monitor.Monitor
	watcher  *watcher.Watcher

	cancel       context.CancelFunc
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
	stopOnce     sync.Once

	// OnReading and OnPauseChange are optional hooks for the tray.
	OnReading     func(alert.Decision, *models.Reading)
	OnPauseChange func()
}

// New builds a daemon from validated settings.
func New(settings *models.Settings, reader battery.Reader, notifier notify.Notifier, logger *zap.Logger) *Daemon {
	d := &Daemon{
		settings:   settings,
		logger:     logger,
		pause:      pause.NewController(settings.PauseFile, pause.WithLogger(logger)),
		store:      activitylog.NewStore(settings.LogDir, activitylog.WithLogger(logger)),
		shutdownCh: make(chan struct{}),
	}
	d.monitor = monitor.New(monitor.Config{
		Thresholds: settings.Thresholds(),
		Interval:   settings.PollInterval(),
		Icon:       settings.Icon,
		Reader:     reader,
		Pause:      d.pause,
		Log:        d.store,
		Notifier:   notifier,
		Logger:     logger,
		Observer:   d.observe,
	})
	return d
}

// Start launches the monitor loop and the pause record watcher.
func (d *Daemon) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)

	if err := os.MkdirAll(filepath.Dir(d.pause.Path()), 0755); err != nil {
		d.logger.Warn("creating pause record directory", zap.Error(err))
	}
	w, err := watcher.New(d.pause.Path(), d.logger)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		d.logger.Warn("pause record watcher disabled", zap.Error(err))
	} else {
		d.watcher = w
		go d.forwardPauseChanges(ctx)
	}

	go d.monitor.Run(ctx)
}

// Stop cancels the monitor and waits up to timeout for the current tick to
// finish.
func (d *Daemon) Stop(timeout time.Duration) {
	d.stopOnce.Do(func() {
		if d.watcher != nil {
			d.watcher.Stop()
		}
		if d.cancel == nil {
			return
		}
		d.cancel()
		select {
		case <-d.monitor.Done():
		case <-time.After(timeout):
			d.logger.Warn("monitor did not stop in time")
		}
	})
}

// ShutdownRequested is closed when the user asks the daemon to exit.
func (d *Daemon) ShutdownRequested() <-chan struct{} {
	return d.shutdownCh
}

// PauseFor implements tray.Controls.
func (d *Daemon) PauseFor(dur time.Duration) error {
	return d.pause.PauseFor(dur)
}

// PauseUntilCharging implements tray.Controls.
func (d *Daemon) PauseUntilCharging() error {
	return d.pause.PauseUntilCharging()
}

// Resume implements tray.Controls.
func (d *Daemon) Resume() error {
	return d.pause.Resume()
}

// PauseStatus implements tray.Controls.
func (d *Daemon) PauseStatus() string {
	state, err := d.pause.Load()
	if err != nil {
		return "Monitoring (pause record unreadable)"
	}
	return state.Describe(time.Now())
}

// RequestShutdown implements tray.Controls.
func (d *Daemon) RequestShutdown() {
	d.shutdownOnce.Do(func() { close(d.shutdownCh) })
}

func (d *Daemon) observe(decision alert.Decision, r *models.Reading) {
	if d.OnReading != nil {
		d.OnReading(decision, r)
	}
}

func (d *Daemon) forwardPauseChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.watcher.Changes():
			state, err := d.pause.Load()
			if err == nil {
				d.logger.Info("pause record changed", zap.String("state", state.Describe(time.Now())))
			}
			if d.OnPauseChange != nil {
				d.OnPauseChange()
			}
		}
	}
}
