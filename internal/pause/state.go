// Package pause stores and evaluates the user's pause directive.
//
// The directive lives in a single small file shared between the daemon's
// tray menu and the CLI. It holds either "charge" (pause until the charger is
// connected) or "pause_until:<epoch seconds>". A missing file means the agent
// is active.
package pause

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrCorrupt is returned when the pause record cannot be parsed.
var ErrCorrupt = errors.New("corrupt pause record")

// Kind tags the variant held by a State.
type Kind int

// Pause kinds.
const (
	Active Kind = iota
	Timed
	UntilCharging
)

const (
	chargeTag   = "charge"
	untilPrefix = "pause_until:"
)

// maxDeadline is the last second of year 9999. Later deadlines do not fit a
// time.Time built from int64 seconds and are rejected as corrupt.
var maxDeadline = float64(time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix())

// State is the pause directive. Until is only meaningful for Timed.
type State struct {
	Kind  Kind
	Until float64 // epoch seconds
}

// TimedUntil returns a timed pause ending at t.
func TimedUntil(t time.Time) State {
	return State{Kind: Timed, Until: float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)}
}

// Deadline returns the end of a timed pause.
func (s State) Deadline() time.Time {
	sec, frac := math.Modf(s.Until)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// String returns the on-disk form. Active serializes to "".
func (s State) String() string {
	switch s.Kind {
	case UntilCharging:
		return chargeTag
	case Timed:
		return untilPrefix + strconv.FormatFloat(s.Until, 'f', -1, 64)
	default:
		return ""
	}
}

// Describe returns a short human-readable status.
func (s State) Describe(now time.Time) string {
	switch s.Kind {
	case UntilCharging:
		return "Paused until charger is connected"
	case Timed:
		if !now.Before(s.Deadline()) {
			return "Monitoring"
		}
		return "Paused until " + s.Deadline().Format("15:04")
	default:
		return "Monitoring"
	}
}

// Parse decodes the on-disk form. Empty content is Active.
func Parse(raw string) (State, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return State{Kind: Active}, nil
	case raw == chargeTag:
		return State{Kind: UntilCharging}, nil
	case strings.HasPrefix(raw, untilPrefix):
		until, err := strconv.ParseFloat(strings.TrimPrefix(raw, untilPrefix), 64)
		if err != nil || math.IsNaN(until) || math.IsInf(until, 0) {
			return State{}, fmt.Errorf("%w: bad deadline in %q", ErrCorrupt, raw)
		}
		if until < 0 || until > maxDeadline {
			return State{}, fmt.Errorf("%w: deadline out of range in %q", ErrCorrupt, raw)
		}
		return State{Kind: Timed, Until: until}, nil
	default:
		return State{}, fmt.Errorf("%w: %q", ErrCorrupt, raw)
	}
}
