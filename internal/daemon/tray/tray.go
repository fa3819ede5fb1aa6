package tray

import (
	"fmt"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/models"
)

var (
	controls Controls
	logger   = zap.NewNop()
	onStart  func()
	onExit   func()

	batteryItem     *systray.MenuItem
	statusItem      *systray.MenuItem
	pauseShortItem  *systray.MenuItem
	pauseChargeItem *systray.MenuItem
	resumeItem      *systray.MenuItem
	quitItem        *systray.MenuItem

	ready = make(chan struct{})
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the monitor here).
// onExitFn is called when the tray exits (cleanup here).
func Run(c Controls, l *zap.Logger, onStartFn, onExitFn func()) {
	controls = c
	if l != nil {
		logger = l
	}
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTitle("")
	systray.SetTooltip(formatTooltip(nil))

	header := systray.AddMenuItem("ChargeWatch", "")
	header.Disable()

	batteryItem = systray.AddMenuItem("Battery: waiting for first reading", "")
	batteryItem.Disable()
	statusItem = systray.AddMenuItem("Monitoring", "")
	statusItem.Disable()

	systray.AddSeparator()

	pauseShortItem = systray.AddMenuItem("Pause 5 minutes", "Stop alerts for five minutes")
	pauseChargeItem = systray.AddMenuItem("Pause until plugged in", "Stop alerts until the charger is connected")
	resumeItem = systray.AddMenuItem("Resume", "Resume monitoring now")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Stop ChargeWatch")

	close(ready)

	if onStart != nil {
		onStart()
	}
	RefreshStatus()

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-pauseShortItem.ClickedCh:
			run(PauseFiveMinutes)
		case <-pauseChargeItem.ClickedCh:
			run(PauseUntilPlugged)
		case <-resumeItem.ClickedCh:
			run(Resume)
		case <-quitItem.ClickedCh:
			run(Exit)
			return
		}
	}
}

func run(cmd Command) {
	if controls == nil {
		return
	}
	logger.Info("tray command", zap.Stringer("command", cmd))
	if err := Apply(controls, cmd); err != nil {
		logger.Error("tray command failed", zap.Stringer("command", cmd), zap.Error(err))
	}
	if cmd != Exit {
		RefreshStatus()
	}
}

// RefreshStatus re-reads the pause state into the status line. Safe to call
// before the tray is ready; it is then a no-op.
func RefreshStatus() {
	if !isReady() || controls == nil {
		return
	}
	status := controls.PauseStatus()
	statusItem.SetTitle(status)
	if status == "Monitoring" {
		resumeItem.Disable()
	} else {
		resumeItem.Enable()
	}
}

// UpdateBattery shows the latest reading in the menu and tooltip.
func UpdateBattery(d alert.Decision, r *models.Reading) {
	if !isReady() {
		return
	}
	batteryItem.SetTitle(formatBatteryTitle(d, r))
	systray.SetTooltip(formatTooltip(r))
}

func isReady() bool {
	select {
	case <-ready:
		return true
	default:
		return false
	}
}

func formatTooltip(r *models.Reading) string {
	if r == nil {
		return "ChargeWatch"
	}
	return fmt.Sprintf("ChargeWatch: %s", r)
}

func formatBatteryTitle(d alert.Decision, r *models.Reading) string {
	if r == nil {
		return "Battery: unavailable"
	}
	switch d {
	case alert.FullUnplugRequest:
		return fmt.Sprintf("Battery: %s, unplug now", r)
	case alert.LowChargeRequest:
		return fmt.Sprintf("Battery: %s, connect charger", r)
	default:
		return fmt.Sprintf("Battery: %s", r)
	}
}
