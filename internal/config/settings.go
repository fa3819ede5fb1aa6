package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chargewatch/chargewatch/internal/models"
)

const envPrefix = "CHARGEWATCH"

// LoadSettings loads the global settings from ~/.chargewatch/settings.yaml,
// applies CHARGEWATCH_* environment overrides, fills in default paths and
// validates the thresholds. If the file doesn't exist, defaults are used.
func LoadSettings() (*models.Settings, error) {
	settings, err := LoadStoredSettings()
	if err != nil {
		return nil, err
	}
	if err := applyEnv(settings, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := fillPaths(settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadStoredSettings loads settings.yaml as written on disk, without
// environment overrides or default paths.
func LoadStoredSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadYAMLOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to ~/.chargewatch/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// applyEnv overrides settings from CHARGEWATCH_<KEY> variables.
func applyEnv(s *models.Settings, lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"MAXIMUM":  &s.Maximum,
		"MINIMUM":  &s.Minimum,
		"INTERVAL": &s.Interval,
	}
	for key, field := range ints {
		raw, ok := lookup(envKey(key))
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("config: parse %s: %w", envKey(key), err)
		}
		*field = v
	}

	strs := map[string]*string{
		"LOG_DIR":    &s.LogDir,
		"PAUSE_FILE": &s.PauseFile,
		"ICON":       &s.Icon,
	}
	for key, field := range strs {
		if raw, ok := lookup(envKey(key)); ok {
			*field = raw
		}
	}
	return nil
}

func envKey(key string) string {
	return envPrefix + "_" + key
}

func fillPaths(s *models.Settings) error {
	if s.LogDir == "" {
		dir, err := DefaultLogDir()
		if err != nil {
			return err
		}
		s.LogDir = dir
	}
	if s.PauseFile == "" {
		path, err := DefaultPauseFile()
		if err != nil {
			return err
		}
		s.PauseFile = path
	}
	if s.Icon == "" {
		s.Icon = DefaultIcon()
	}
	return nil
}
