package models

import "time"

// DaemonMode says how chargewatchd presents its controls.
type DaemonMode string

const (
	// ModeTray runs with a system tray menu.
	ModeTray DaemonMode = "tray"
	// ModeForeground runs headless and stops on SIGINT/SIGTERM.
	ModeForeground DaemonMode = "foreground"
)

// DaemonInfo is the record chargewatchd keeps in ~/.chargewatch/daemon.yaml
// while it runs. The CLI reads it to find, describe and stop the daemon.
type DaemonInfo struct {
	Version    int        `yaml:"version"`
	PID        int        `yaml:"pid"`
	Mode       DaemonMode `yaml:"mode"`
	AppVersion string     `yaml:"app_version,omitempty"`
	StartedAt  time.Time  `yaml:"started_at"`
}

// NewDaemonInfo describes the current process.
func NewDaemonInfo(pid int, mode DaemonMode, appVersion string) *DaemonInfo {
	return &DaemonInfo{
		Version:    1,
		PID:        pid,
		Mode:       mode,
		AppVersion: appVersion,
		StartedAt:  time.Now().UTC(),
	}
}

// HasTray reports whether the daemon shows a tray menu. Records written
// without a mode predate foreground support and always had a tray.
func (d *DaemonInfo) HasTray() bool {
	return d.Mode != ModeForeground
}

// Uptime returns how long the daemon has been running at now, to the second.
func (d *DaemonInfo) Uptime(now time.Time) time.Duration {
	if d.StartedAt.IsZero() || now.Before(d.StartedAt) {
		return 0
	}
	return now.Sub(d.StartedAt).Truncate(time.Second)
}
