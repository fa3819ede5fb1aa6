package pause

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/chargewatch/chargewatch/internal/models"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController(t *testing.T) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	path := filepath.Join(t.TempDir(), "pause")
	return NewController(path, WithClock(clock.Now), WithLogger(zaptest.NewLogger(t))), clock
}

var (
	onBattery = &models.Reading{Percent: 60, Plugged: false}
	pluggedIn = &models.Reading{Percent: 60, Plugged: true}
)

func TestMissingRecordIsActive(t *testing.T) {
	c, _ := newTestController(t)

	state, err := c.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if state.Kind != Active {
		t.Errorf("Load() kind = %v, want Active", state.Kind)
	}
	if c.IsSuppressed(onBattery) {
		t.Error("IsSuppressed() = true with no record")
	}
}

func TestPauseForExpires(t *testing.T) {
	c, clock := newTestController(t)

	if err := c.PauseFor(300 * time.Second); err != nil {
		t.Fatalf("PauseFor() error: %v", err)
	}
	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatalf("reading record: %v", err)
	}
	if got := string(data); got != "pause_until:1700000300" {
		t.Errorf("record = %q, want %q", got, "pause_until:1700000300")
	}

	for _, offset := range []time.Duration{0, time.Minute, 299 * time.Second} {
		clock.t = time.Unix(1700000000, 0).Add(offset)
		if !c.IsSuppressed(onBattery) {
			t.Errorf("IsSuppressed() at +%v = false, want true", offset)
		}
	}

	clock.Advance(time.Second)
	if c.IsSuppressed(onBattery) {
		t.Error("IsSuppressed() at +300s = true, want false")
	}

	// Lazy expiry: the stale record stays on disk.
	if _, err := os.Stat(c.Path()); err != nil {
		t.Errorf("expired record removed: %v", err)
	}
}

func TestPauseUntilChargingLiftsWhenPlugged(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.PauseUntilCharging(); err != nil {
		t.Fatalf("PauseUntilCharging() error: %v", err)
	}
	if !c.IsSuppressed(onBattery) {
		t.Error("IsSuppressed(on battery) = false, want true")
	}
	if c.IsSuppressed(pluggedIn) {
		t.Error("IsSuppressed(plugged in) = true, want false")
	}
	if c.IsSuppressed(nil) {
		t.Error("IsSuppressed(nil) = true, want false")
	}

	// No state change was needed for the flip.
	state, err := c.Load()
	if err != nil || state.Kind != UntilCharging {
		t.Errorf("Load() = %+v, %v, want UntilCharging", state, err)
	}
}

func TestResume(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.Resume(); err != nil {
		t.Errorf("Resume() without record error: %v", err)
	}
	if err := c.PauseUntilCharging(); err != nil {
		t.Fatalf("PauseUntilCharging() error: %v", err)
	}
	if err := c.Resume(); err != nil {
		t.Fatalf("Resume() error: %v", err)
	}
	if c.IsSuppressed(onBattery) {
		t.Error("IsSuppressed() after Resume = true")
	}
}

func TestCorruptRecordIsNotSuppressed(t *testing.T) {
	c, _ := newTestController(t)

	if err := os.WriteFile(c.Path(), []byte("pause_until:tomorrow"), 0600); err != nil {
		t.Fatal(err)
	}
	if c.IsSuppressed(onBattery) {
		t.Error("IsSuppressed() with corrupt record = true, want false")
	}
}

func TestFarDeadlines(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		suppressed bool
	}{
		{name: "year 9999 still suppresses", raw: "pause_until:253402300799", suppressed: true},
		{name: "overflowing deadline is corrupt", raw: "pause_until:1e300", suppressed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(t)
			if err := os.WriteFile(c.Path(), []byte(tt.raw), 0600); err != nil {
				t.Fatal(err)
			}
			if got := c.IsSuppressed(onBattery); got != tt.suppressed {
				t.Errorf("IsSuppressed(%q) = %v, want %v", tt.raw, got, tt.suppressed)
			}
		})
	}
}

func TestCurrentTreatsCorruptAsActive(t *testing.T) {
	c, _ := newTestController(t)

	if err := os.WriteFile(c.Path(), []byte("???"), 0600); err != nil {
		t.Fatal(err)
	}
	if state := c.Current(); state.Kind != Active {
		t.Errorf("Current() = %+v, want Active", state)
	}
}

func TestClearUntilChargingLeavesCorruptRecord(t *testing.T) {
	c, _ := newTestController(t)

	if err := os.WriteFile(c.Path(), []byte("???"), 0600); err != nil {
		t.Fatal(err)
	}
	cleared, err := c.ClearUntilCharging()
	if err != nil || cleared {
		t.Errorf("ClearUntilCharging() on corrupt record = %v, %v, want false, nil", cleared, err)
	}
	if _, err := os.Stat(c.Path()); err != nil {
		t.Errorf("corrupt record removed: %v", err)
	}
}

func TestClearUntilCharging(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.PauseFor(time.Minute); err != nil {
		t.Fatal(err)
	}
	cleared, err := c.ClearUntilCharging()
	if err != nil || cleared {
		t.Errorf("ClearUntilCharging() on timed pause = %v, %v, want false, nil", cleared, err)
	}
	if !c.IsSuppressed(onBattery) {
		t.Error("timed pause was cleared")
	}

	if err := c.PauseUntilCharging(); err != nil {
		t.Fatal(err)
	}
	cleared, err = c.ClearUntilCharging()
	if err != nil || !cleared {
		t.Errorf("ClearUntilCharging() = %v, %v, want true, nil", cleared, err)
	}
	if _, err := os.Stat(c.Path()); !os.IsNotExist(err) {
		t.Errorf("record still present after clear: %v", err)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	c, _ := newTestController(t)

	for i := 0; i < 5; i++ {
		if err := c.PauseFor(time.Minute); err != nil {
			t.Fatal(err)
		}
		if err := c.PauseUntilCharging(); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the record", len(entries))
	}
}
