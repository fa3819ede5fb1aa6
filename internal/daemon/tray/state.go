// Package tray implements the system tray icon and menu for the daemon.
package tray

import (
	"fmt"
	"time"
)

// Controls are the daemon actions the tray menu can trigger.
type Controls interface {
	PauseFor(d time.Duration) error
	PauseUntilCharging() error
	Resume() error
	PauseStatus() string
	RequestShutdown()
}

// Command is a menu action.
type Command int

// Menu commands.
const (
	PauseFiveMinutes Command = iota
	PauseUntilPlugged
	Resume
	Exit
)

// ShortPause is the duration of the "Pause 5 minutes" action.
const ShortPause = 5 * time.Minute

func (c Command) String() string {
	switch c {
	case PauseFiveMinutes:
		return "pause-5m"
	case PauseUntilPlugged:
		return "pause-until-plugged"
	case Resume:
		return "resume"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Apply performs cmd against c.
func Apply(c Controls, cmd Command) error {
	switch cmd {
	case PauseFiveMinutes:
		return c.PauseFor(ShortPause)
	case PauseUntilPlugged:
		return c.PauseUntilCharging()
	case Resume:
		return c.Resume()
	case Exit:
		c.RequestShutdown()
		return nil
	default:
		return fmt.Errorf("unknown tray command %d", int(cmd))
	}
}
