// Package battery reads the host's power-supply state.
package battery

import (
	"errors"
	"fmt"
	"math"

	sysbattery "github.com/distatus/battery"

	"github.com/chargewatch/chargewatch/internal/models"
)

// ErrUnavailable means the host reports no usable battery.
var ErrUnavailable = errors.New("battery information unavailable")

// Reader produces a fresh reading on every call.
type Reader interface {
	Read() (*models.Reading, error)
}

// System reads every battery the OS exposes and combines them into one
// reading: percent is total charge over total capacity, and the host counts
// as plugged in when any battery is on external power.
type System struct {
	getAll func() ([]*sysbattery.Battery, error)
}

// NewSystem returns a reader backed by the OS battery interfaces.
func NewSystem() *System {
	return &System{getAll: sysbattery.GetAll}
}

// Read implements Reader.
func (s *System) Read() (*models.Reading, error) {
	batteries, err := s.getAll()
	var partial sysbattery.Errors
	if err != nil && !errors.As(err, &partial) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return combine(batteries, partial)
}

func combine(batteries []*sysbattery.Battery, errs sysbattery.Errors) (*models.Reading, error) {
	var current, full float64
	plugged := false
	found := false

	for i, b := range batteries {
		if b == nil || !usable(errs, i) || b.Full <= 0 {
			continue
		}
		found = true
		current += b.Current
		full += b.Full
		if onExternalPower(b.State.Raw) {
			plugged = true
		}
	}
	if !found {
		return nil, ErrUnavailable
	}

	percent := int(math.Round(current / full * 100))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return &models.Reading{Percent: percent, Plugged: plugged}, nil
}

// onExternalPower reports whether a battery in state s has the charger
// connected. Idle is a battery held at its level on AC, e.g. by a charge
// limit.
func onExternalPower(s sysbattery.AgnosticState) bool {
	switch s {
	case sysbattery.Charging, sysbattery.Full, sysbattery.Idle:
		return true
	default:
		return false
	}
}

// usable reports whether the i-th battery has the fields we need. Partial
// errors only concern fields other than charge and state.
func usable(errs sysbattery.Errors, i int) bool {
	if i >= len(errs) || errs[i] == nil {
		return true
	}
	var partial sysbattery.ErrPartial
	if !errors.As(errs[i], &partial) {
		return false
	}
	return partial.Current == nil && partial.Full == nil && partial.State == nil
}
