// Package monitor runs the polling loop that ties the battery reader, pause
// controller, alert evaluator, notifier and activity log together.
package monitor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chargewatch/chargewatch/internal/activitylog"
	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
	"github.com/chargewatch/chargewatch/internal/pause"
)

// Observer is called after every evaluated tick. reading is nil when the
// battery was unavailable.
type Observer func(d alert.Decision, reading *models.Reading)

// Config wires a Monitor.
type Config struct {
	Thresholds models.Thresholds
	Interval   time.Duration
	Icon       string

	Reader   battery.Reader
	Pause    *pause.Controller
	Log      *activitylog.Store
	Notifier notify.Notifier
	Logger   *zap.Logger
	Observer Observer
}

// Monitor polls the battery on a fixed interval. Ticks never overlap.
type Monitor struct {
	cfg  Config
	done chan struct{}
}

// New creates a monitor. Intervals shorter than models.MinInterval are
// raised to it.
func New(cfg Config) *Monitor {
	if floor := time.Duration(models.MinInterval) * time.Second; cfg.Interval < floor {
		cfg.Interval = floor
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Monitor{cfg: cfg, done: make(chan struct{})}
}

// Interval returns the effective polling interval.
func (m *Monitor) Interval() time.Duration {
	return m.cfg.Interval
}

// Done is closed once Run has returned.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Run ticks immediately, then after each interval, until ctx is cancelled.
// A failing tick never stops the loop.
func (m *Monitor) Run(ctx context.Context) {
	defer close(m.done)

	m.cfg.Logger.Info("monitor started",
		zap.Int("maximum", m.cfg.Thresholds.Maximum),
		zap.Int("minimum", m.cfg.Thresholds.Minimum),
		zap.Duration("interval", m.cfg.Interval),
	)

	for {
		m.Tick()

		select {
		case <-ctx.Done():
			m.cfg.Logger.Info("monitor stopped")
			return
		case <-time.After(m.cfg.Interval):
		}
	}
}

// Tick runs one poll-evaluate-log-prune pass. Errors and panics are written
// to the activity log and swallowed.
func (m *Monitor) Tick() {
	defer func() {
		if r := recover(); r != nil {
			m.unhandled(fmt.Errorf("panic: %v", r))
		}
	}()
	if err := m.tick(); err != nil {
		m.unhandled(err)
	}
}

func (m *Monitor) tick() error {
	var (
		reading *models.Reading
		sampled bool
	)
	sample := func() *models.Reading {
		if !sampled {
			reading = m.read()
			sampled = true
		}
		return reading
	}

	state := m.cfg.Pause.Current()

	// Only pause-until-charging needs a reading to decide.
	var latest *models.Reading
	if state.Kind == pause.UntilCharging {
		latest = sample()
	}
	if m.cfg.Pause.Suppresses(state, latest) {
		m.cfg.Logger.Debug("tick suppressed", zap.String("pause", state.String()))
		return nil
	}

	r := sample()
	decision := alert.Evaluate(r, m.cfg.Thresholds)
	a := alert.Describe(decision, r, m.cfg.Thresholds)

	m.cfg.Log.Append(activitylog.DefaultLabel, a.LogLine)
	if a.Notify && m.cfg.Notifier != nil {
		notify.Dispatch(m.cfg.Notifier, m.cfg.Logger, a.Title, a.Message, m.cfg.Icon)
	}

	// Only the Charging branch clears a leftover pause-until-charging record.
	// A failed clear is retried on the next Charging tick.
	if decision == alert.Charging {
		cleared, err := m.cfg.Pause.ClearUntilCharging()
		switch {
		case err != nil:
			m.cfg.Logger.Warn("failed to clear pause-until-charging record",
				zap.String("path", m.cfg.Pause.Path()),
				zap.Error(err),
			)
		case cleared:
			m.cfg.Logger.Info("cleared pause-until-charging record")
		}
	}

	if m.cfg.Observer != nil {
		m.cfg.Observer(decision, r)
	}

	if _, err := m.cfg.Log.Prune(activitylog.RetentionDays); err != nil {
		return fmt.Errorf("pruning activity log: %w", err)
	}
	return nil
}

func (m *Monitor) read() *models.Reading {
	r, err := m.cfg.Reader.Read()
	if err != nil {
		m.cfg.Logger.Warn("battery read failed", zap.Error(err))
		return nil
	}
	return r
}

func (m *Monitor) unhandled(err error) {
	m.cfg.Logger.Error("unhandled tick error", zap.Error(err))
	m.cfg.Log.Append(activitylog.DefaultLabel, "Unhandled error - "+err.Error())
}
