package config

import (
	"errors"
	"os"
	"syscall"

	"github.com/chargewatch/chargewatch/internal/models"
)

// LoadDaemonInfo reads ~/.chargewatch/daemon.yaml. A missing file yields nil.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo records the running daemon in ~/.chargewatch/daemon.yaml.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo deletes daemon.yaml. A missing file is not an error.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RunningDaemon returns the record of a live daemon, or nil when none runs.
// A record whose process is gone is stale and gets removed, unless another
// daemon has replaced it in the meantime.
func RunningDaemon() (*models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil || info == nil {
		return nil, err
	}
	if processAlive(info.PID) {
		return info, nil
	}

	if current, err := LoadDaemonInfo(); err == nil && current != nil && current.PID == info.PID {
		_ = RemoveDaemonInfo()
	}
	return nil, nil
}

// processAlive probes pid with signal 0.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
