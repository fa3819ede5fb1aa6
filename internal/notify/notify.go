// Package notify delivers desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// AppName is shown as the notification source where the OS supports it.
const AppName = "ChargeWatch"

// Notifier delivers a notification to the user.
type Notifier interface {
	// Notify shows title and message. icon is a file path or "".
	Notify(title, message, icon string) error

	// Name returns the name of the notifier (e.g., "desktop").
	Name() string
}

// Desktop shows native OS notifications.
type Desktop struct{}

// NewDesktop returns a Desktop notifier.
func NewDesktop() *Desktop {
	beeep.AppName = AppName
	return &Desktop{}
}

// Notify implements Notifier.
func (d *Desktop) Notify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// Name implements Notifier.
func (d *Desktop) Name() string { return "desktop" }

// Dispatch delivers a notification on its own goroutine and returns
// immediately. Delivery errors are only logged.
func Dispatch(n Notifier, logger *zap.Logger, title, message, icon string) {
	go func() {
		if err := n.Notify(title, message, icon); err != nil {
			logger.Warn("notification failed",
				zap.String("notifier", n.Name()),
				zap.String("title", title),
				zap.Error(err),
			)
		}
	}()
}
