package models

import (
	"fmt"
	"time"
)

// Default threshold and polling values.
const (
	DefaultMaximum  = 90
	DefaultMinimum  = 20
	DefaultInterval = 30

	// MinInterval is the shortest polling interval in seconds. Shorter
	// configured values are raised to it.
	MinInterval = 30
)

// Settings represents global application settings.
// This corresponds to ~/.chargewatch/settings.yaml.
type Settings struct {
	Version   int    `yaml:"version"`
	Maximum   int    `yaml:"maximum"`
	Minimum   int    `yaml:"minimum"`
	Interval  int    `yaml:"interval"` // seconds
	LogDir    string `yaml:"log_dir,omitempty"`
	PauseFile string `yaml:"pause_file,omitempty"`
	Icon      string `yaml:"icon,omitempty"` // empty = logo.png next to the executable
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		Maximum:  DefaultMaximum,
		Minimum:  DefaultMinimum,
		Interval: DefaultInterval,
	}
}

// Thresholds returns the charge thresholds carried by the settings.
func (s *Settings) Thresholds() Thresholds {
	return Thresholds{Maximum: s.Maximum, Minimum: s.Minimum}
}

// PollInterval returns the polling interval, never shorter than MinInterval.
func (s *Settings) PollInterval() time.Duration {
	secs := s.Interval
	if secs < MinInterval {
		secs = MinInterval
	}
	return time.Duration(secs) * time.Second
}

// Validate checks the threshold invariant 0 <= minimum < maximum <= 100.
func (s *Settings) Validate() error {
	return s.Thresholds().Validate()
}

// Thresholds are the charge levels that trigger alerts. They are loaded once
// at startup and never change afterwards.
type Thresholds struct {
	Maximum int
	Minimum int
}

// Validate checks 0 <= Minimum < Maximum <= 100.
func (t Thresholds) Validate() error {
	if t.Minimum < 0 || t.Maximum > 100 || t.Minimum >= t.Maximum {
		return fmt.Errorf("invalid thresholds: need 0 <= minimum (%d) < maximum (%d) <= 100", t.Minimum, t.Maximum)
	}
	return nil
}
