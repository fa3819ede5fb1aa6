package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chargewatch/chargewatch/internal/models"
)

func TestLoadSettingsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHARGEWATCH_HOME", home)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Maximum != 90 || s.Minimum != 20 || s.Interval != 30 {
		t.Errorf("thresholds = %d/%d/%d, want 90/20/30", s.Maximum, s.Minimum, s.Interval)
	}
	if s.LogDir != filepath.Join(home, LogDirName) {
		t.Errorf("LogDir = %q", s.LogDir)
	}
	if s.PauseFile != filepath.Join(home, PauseFileName) {
		t.Errorf("PauseFile = %q", s.PauseFile)
	}
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHARGEWATCH_HOME", home)
	yaml := "maximum: 80\nminimum: 25\ninterval: 10\n"
	if err := os.WriteFile(filepath.Join(home, SettingsFileName), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHARGEWATCH_MAXIMUM", "85")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Maximum != 85 || s.Minimum != 25 {
		t.Errorf("thresholds = %d/%d, want 85/25", s.Maximum, s.Minimum)
	}
	if s.PollInterval() != 30*time.Second {
		t.Errorf("PollInterval() = %v, want clamped 30s", s.PollInterval())
	}
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"minimum above maximum", map[string]string{"CHARGEWATCH_MINIMUM": "95"}},
		{"maximum above 100", map[string]string{"CHARGEWATCH_MAXIMUM": "101"}},
		{"negative minimum", map[string]string{"CHARGEWATCH_MINIMUM": "-1"}},
		{"not a number", map[string]string{"CHARGEWATCH_INTERVAL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHARGEWATCH_HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadSettings(); err == nil {
				t.Error("LoadSettings() expected error")
			}
		})
	}
}

func TestRunningDaemon(t *testing.T) {
	tests := []struct {
		name       string
		info       *models.DaemonInfo
		wantLive   bool
		wantRecord bool
	}{
		{
			name:     "no record",
			info:     nil,
			wantLive: false,
		},
		{
			name:       "live tray daemon",
			info:       models.NewDaemonInfo(os.Getpid(), models.ModeTray, "1.2.3"),
			wantLive:   true,
			wantRecord: true,
		},
		{
			name:       "live foreground daemon",
			info:       models.NewDaemonInfo(os.Getpid(), models.ModeForeground, ""),
			wantLive:   true,
			wantRecord: true,
		},
		{
			name:       "stale record is removed",
			info:       models.NewDaemonInfo(-1, models.ModeTray, ""),
			wantLive:   false,
			wantRecord: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHARGEWATCH_HOME", t.TempDir())
			if tt.info != nil {
				if err := SaveDaemonInfo(tt.info); err != nil {
					t.Fatalf("SaveDaemonInfo() error: %v", err)
				}
			}

			info, err := RunningDaemon()
			if err != nil {
				t.Fatalf("RunningDaemon() error: %v", err)
			}
			if (info != nil) != tt.wantLive {
				t.Fatalf("RunningDaemon() = %+v, want live %v", info, tt.wantLive)
			}
			if info != nil && (info.PID != tt.info.PID || info.Mode != tt.info.Mode || info.AppVersion != tt.info.AppVersion) {
				t.Errorf("RunningDaemon() = %+v, want %+v", info, tt.info)
			}

			path, err := GlobalDaemonFile()
			if err != nil {
				t.Fatal(err)
			}
			if FileExists(path) != tt.wantRecord {
				t.Errorf("daemon.yaml exists = %v, want %v", FileExists(path), tt.wantRecord)
			}
		})
	}
}

func TestRemoveDaemonInfoIsIdempotent(t *testing.T) {
	t.Setenv("CHARGEWATCH_HOME", t.TempDir())

	if err := SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), models.ModeTray, "")); err != nil {
		t.Fatalf("SaveDaemonInfo() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := RemoveDaemonInfo(); err != nil {
			t.Fatalf("RemoveDaemonInfo() #%d error: %v", i+1, err)
		}
	}
	if info, _ := RunningDaemon(); info != nil {
		t.Errorf("RunningDaemon() = %+v after RemoveDaemonInfo", info)
	}
}

func TestDaemonInfoModeAndUptime(t *testing.T) {
	started := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		info     models.DaemonInfo
		now      time.Time
		wantTray bool
		wantUp   time.Duration
	}{
		{
			name:     "tray",
			info:     models.DaemonInfo{Mode: models.ModeTray, StartedAt: started},
			now:      started.Add(90*time.Second + 400*time.Millisecond),
			wantTray: true,
			wantUp:   90 * time.Second,
		},
		{
			name:     "foreground",
			info:     models.DaemonInfo{Mode: models.ModeForeground, StartedAt: started},
			now:      started.Add(time.Hour),
			wantTray: false,
			wantUp:   time.Hour,
		},
		{
			name:     "record without mode",
			info:     models.DaemonInfo{StartedAt: started},
			now:      started,
			wantTray: true,
			wantUp:   0,
		},
		{
			name:     "clock behind start",
			info:     models.DaemonInfo{Mode: models.ModeTray, StartedAt: started},
			now:      started.Add(-time.Minute),
			wantTray: true,
			wantUp:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.HasTray(); got != tt.wantTray {
				t.Errorf("HasTray() = %v, want %v", got, tt.wantTray)
			}
			if got := tt.info.Uptime(tt.now); got != tt.wantUp {
				t.Errorf("Uptime() = %v, want %v", got, tt.wantUp)
			}
		})
	}
}

func TestSaveYAMLLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	for _, maximum := range []int{80, 85} {
		s := models.NewSettings()
		s.Maximum = maximum
		if err := SaveYAML(path, s); err != nil {
			t.Fatalf("SaveYAML() error: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "settings.yaml" {
		t.Errorf("dir entries = %v, want only settings.yaml", entries)
	}
	loaded, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil || loaded.Maximum != 85 {
		t.Errorf("LoadYAMLOrDefault() = %+v, %v, want maximum 85", loaded, err)
	}
}
