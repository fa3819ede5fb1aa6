package pause

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chargewatch/chargewatch/internal/models"
)

// Controller owns the pause record at a file path. Every write replaces the
// whole record atomically, so concurrent writers (tray and CLI) resolve as
// last write wins and readers never see a partial record.
type Controller struct {
	path   string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a controller for the record at path.
func NewController(path string, opts ...Option) *Controller {
	c := &Controller{
		path:   path,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the record's location.
func (c *Controller) Path() string {
	return c.path
}

// PauseFor suppresses the agent for d from now.
func (c *Controller) PauseFor(d time.Duration) error {
	return c.write(TimedUntil(c.now().Add(d)))
}

// PauseUntilCharging suppresses the agent while it runs on battery.
func (c *Controller) PauseUntilCharging() error {
	return c.write(State{Kind: UntilCharging})
}

// Resume clears any pause.
func (c *Controller) Resume() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing pause record: %w", err)
	}
	return nil
}

// Load reads the record. A missing record is Active. Unparseable content
// returns an error wrapping ErrCorrupt.
func (c *Controller) Load() (State, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{Kind: Active}, nil
		}
		return State{}, fmt.Errorf("reading pause record: %w", err)
	}
	return Parse(string(data))
}

// Current loads the record for a tick. An unreadable or corrupt record is
// logged and counts as Active.
func (c *Controller) Current() State {
	state, err := c.Load()
	if err != nil {
		c.logger.Error("ignoring unreadable pause record", zap.String("path", c.path), zap.Error(err))
		return State{Kind: Active}
	}
	return state
}

// IsSuppressed reports whether the current tick should be skipped. A nil
// reading means the battery is unavailable. Expired timed pauses are not
// suppressed but stay on disk until overwritten or resumed.
func (c *Controller) IsSuppressed(reading *models.Reading) bool {
	return c.Suppresses(c.Current(), reading)
}

// Suppresses evaluates an already loaded state.
func (c *Controller) Suppresses(state State, reading *models.Reading) bool {
	switch state.Kind {
	case Timed:
		return c.now().Before(state.Deadline())
	case UntilCharging:
		return reading != nil && !reading.Plugged
	default:
		return false
	}
}

// ClearUntilCharging removes the record only when it holds a pause-until-
// charging directive. It reports whether anything was removed. A corrupt
// record holds no directive and is left for Resume or the next pause.
func (c *Controller) ClearUntilCharging() (bool, error) {
	state, err := c.Load()
	if errors.Is(err, ErrCorrupt) {
		return false, nil
	}
	if err != nil || state.Kind != UntilCharging {
		return false, err
	}
	if err := c.Resume(); err != nil {
		return false, err
	}
	return true, nil
}

// write replaces the record: temp file in the same directory, fsync, rename.
func (c *Controller) write(state State) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating pause directory: %w", err)
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(c.path)+"."+uuid.NewString()+".tmp")
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("creating temporary pause record: %w", err)
	}

	if _, err := file.WriteString(state.String()); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temporary pause record: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temporary pause record: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary pause record: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming pause record into place: %w", err)
	}
	return nil
}
