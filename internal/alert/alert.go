// Package alert decides which battery condition holds for a reading and
// what the agent should say about it.
package alert

import (
	"fmt"

	"github.com/chargewatch/chargewatch/internal/models"
)

// Decision is the outcome of evaluating one reading against the thresholds.
type Decision int

// Decisions are mutually exclusive.
const (
	Unavailable Decision = iota
	FullUnplugRequest
	LowChargeRequest
	AlmostFull
	Charging
)

func (d Decision) String() string {
	switch d {
	case Unavailable:
		return "unavailable"
	case FullUnplugRequest:
		return "full-unplug"
	case LowChargeRequest:
		return "low-charge"
	case AlmostFull:
		return "almost-full"
	case Charging:
		return "charging"
	default:
		return "unknown"
	}
}

// Title is used for every user notification.
const Title = "Battery Alert Notification"

// Alert is what the agent emits for a decision.
type Alert struct {
	Decision Decision
	Title    string
	Message  string // notification body
	LogLine  string // activity log message
	Notify   bool
}

// Evaluate classifies a reading. A nil reading means the battery could not be
// read. The first matching rule wins.
func Evaluate(r *models.Reading, t models.Thresholds) Decision {
	if r == nil {
		return Unavailable
	}
	switch {
	case r.Percent >= t.Maximum && r.Plugged:
		return FullUnplugRequest
	case r.Percent <= t.Minimum && !r.Plugged:
		return LowChargeRequest
	case r.Percent >= t.Maximum:
		return AlmostFull
	default:
		return Charging
	}
}

// Describe builds the alert for a decision. Only FullUnplugRequest and
// LowChargeRequest notify the user; the rest are log-only.
func Describe(d Decision, r *models.Reading, t models.Thresholds) Alert {
	a := Alert{Decision: d, Title: Title}
	pct := 0
	if r != nil {
		pct = r.Percent
	}

	switch d {
	case FullUnplugRequest:
		a.Notify = true
		a.Message = fmt.Sprintf("Battery full %d%% - Unplug your charger", pct)
		a.LogLine = fmt.Sprintf("Your battery is fully charged - %d%%. Unplug your charger!", pct)
	case LowChargeRequest:
		a.Notify = true
		a.Message = fmt.Sprintf("Battery Low %d%% - Connect your charger", pct)
		a.LogLine = a.Message
	case AlmostFull:
		a.LogLine = fmt.Sprintf("Your battery is almost fully charged. Battery percentage is %d%%.", pct)
	case Charging:
		a.LogLine = fmt.Sprintf("Your battery is not yet charged above %d%%. Battery percentage is %d%%.", t.Maximum, pct)
	default:
		a.LogLine = "Battery information unavailable"
	}
	return a
}
