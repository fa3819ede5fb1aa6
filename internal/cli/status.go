package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/alert"
	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/pause"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show battery, pause and daemon status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	thresholds := settings.Thresholds()

	reading, readErr := battery.NewSystem().Read()
	decision := alert.Evaluate(reading, thresholds)

	if reading != nil {
		fmt.Printf("%s %s\n", styleLabel.Render("Battery:   "), styleValue.Render(reading.String()))
	} else {
		fmt.Printf("%s %s\n", styleLabel.Render("Battery:   "), styleHint.Render(readErr.Error()))
	}
	fmt.Printf("%s %s\n", styleLabel.Render("Condition: "), decisionStyle(decision).Render(decision.String()))
	fmt.Printf("%s %s\n", styleLabel.Render("Thresholds:"),
		styleValue.Render(fmt.Sprintf("min %d%%, max %d%%, every %s", thresholds.Minimum, thresholds.Maximum, settings.PollInterval())))

	pauses := pause.NewController(settings.PauseFile)
	state, err := pauses.Load()
	switch {
	case errors.Is(err, pause.ErrCorrupt):
		fmt.Printf("%s %s\n", styleLabel.Render("Alerts:    "), styleWarning.Render("pause record is corrupt, ignored"))
	case err != nil:
		return err
	case state.Kind == pause.UntilCharging && !pauses.IsSuppressed(reading):
		fmt.Printf("%s %s\n", styleLabel.Render("Alerts:    "), styleValue.Render("on, charger connected (pause lifts at the next normal reading)"))
	default:
		fmt.Printf("%s %s\n", styleLabel.Render("Alerts:    "), styleValue.Render(state.Describe(time.Now())))
	}

	info, err := config.RunningDaemon()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if info != nil {
		fmt.Printf("%s %s\n", styleLabel.Render("Daemon:    "),
			styleSuccess.Render(fmt.Sprintf("running in %s mode (PID %d, up %s)", info.Mode, info.PID, info.Uptime(time.Now()))))
	} else {
		fmt.Printf("%s %s\n", styleLabel.Render("Daemon:    "), styleHint.Render("not running"))
	}
	return nil
}
