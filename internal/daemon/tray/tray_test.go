package tray

import (
	"errors"
	"testing"
	"time"

	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/models"
)

type fakeControls struct {
	calls    []string
	paused   time.Duration
	shutdown bool
	err      error
}

func (f *fakeControls) PauseFor(d time.Duration) error {
	f.calls = append(f.calls, "pause-for")
	f.paused = d
	return f.err
}

func (f *fakeControls) PauseUntilCharging() error {
	f.calls = append(f.calls, "pause-until-charging")
	return f.err
}

func (f *fakeControls) Resume() error {
	f.calls = append(f.calls, "resume")
	return f.err
}

func (f *fakeControls) PauseStatus() string { return "Monitoring" }

func (f *fakeControls) RequestShutdown() {
	f.calls = append(f.calls, "shutdown")
	f.shutdown = true
}

func TestApply(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected string
	}{
		{PauseFiveMinutes, "pause-for"},
		{PauseUntilPlugged, "pause-until-charging"},
		{Resume, "resume"},
		{Exit, "shutdown"},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			c := &fakeControls{}
			if err := Apply(c, tt.cmd); err != nil {
				t.Fatalf("Apply(%v) error: %v", tt.cmd, err)
			}
			if len(c.calls) != 1 || c.calls[0] != tt.expected {
				t.Errorf("Apply(%v) calls = %v, want [%s]", tt.cmd, c.calls, tt.expected)
			}
		})
	}

	c := &fakeControls{}
	if err := Apply(c, PauseFiveMinutes); err != nil || c.paused != 5*time.Minute {
		t.Errorf("PauseFiveMinutes paused for %v, %v", c.paused, err)
	}
	if err := Apply(&fakeControls{err: errors.New("disk full")}, Resume); err == nil {
		t.Error("Apply() swallowed controls error")
	}
	if err := Apply(c, Command(42)); err == nil {
		t.Error("Apply(unknown) expected error")
	}
}

func TestFormatBatteryTitle(t *testing.T) {
	tests := []struct {
		name     string
		decision alert.Decision
		reading  *models.Reading
		expected string
	}{
		{"unavailable", alert.Unavailable, nil, "Battery: unavailable"},
		{"full", alert.FullUnplugRequest, &models.Reading{Percent: 95, Plugged: true}, "Battery: 95% (plugged in), unplug now"},
		{"low", alert.LowChargeRequest, &models.Reading{Percent: 12}, "Battery: 12% (on battery), connect charger"},
		{"normal", alert.Charging, &models.Reading{Percent: 50}, "Battery: 50% (on battery)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBatteryTitle(tt.decision, tt.reading); got != tt.expected {
				t.Errorf("formatBatteryTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUpdatesBeforeReadyAreNoops(t *testing.T) {
	UpdateBattery(alert.Charging, &models.Reading{Percent: 50})
	RefreshStatus()
}
