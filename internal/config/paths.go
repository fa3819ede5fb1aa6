// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global ChargeWatch directory.
	GlobalDirName = ".chargewatch"

	// LogDirName is the name of the activity log directory.
	LogDirName = "Log"
)

// File names
const (
	DaemonFileName    = "daemon.yaml"
	SettingsFileName  = "settings.yaml"
	PauseFileName     = "pause"
	DaemonLogFileName = "chargewatchd.log"
	IconFileName      = "logo.png"
)

// GlobalDir returns the path to the global ChargeWatch directory (~/.chargewatch/).
// CHARGEWATCH_HOME overrides it.
func GlobalDir() (string, error) {
	if dir := os.Getenv(envPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	return globalFile(DaemonFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// GlobalDaemonLogFile returns the path to the daemon's diagnostic log.
func GlobalDaemonLogFile() (string, error) {
	return globalFile(DaemonLogFileName)
}

// DefaultPauseFile returns the default path of the pause record.
func DefaultPauseFile() (string, error) {
	return globalFile(PauseFileName)
}

// DefaultLogDir returns the default root of the activity log tree.
func DefaultLogDir() (string, error) {
	return globalFile(LogDirName)
}

// DefaultIcon returns logo.png next to the running executable, or "" when
// there is none.
func DefaultIcon() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	path := filepath.Join(filepath.Dir(exe), IconFileName)
	if !FileExists(path) {
		return ""
	}
	return path
}

// EnsureGlobalDir creates the global ChargeWatch directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
