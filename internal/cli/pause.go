package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/pause"
)

var (
	pauseFor          time.Duration
	pauseUntilPlugged bool
)

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause battery alerts",
	Long: `Pause battery alerts for a while (default 5 minutes) or, with
--until-plugged, until the charger is connected.`,
	Args: cobra.NoArgs,
	RunE: runPause,
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume battery alerts",
	Args:  cobra.NoArgs,
	RunE:  runResume,
}

func init() {
	pauseCmd.Flags().DurationVar(&pauseFor, "for", 5*time.Minute, "How long to pause")
	pauseCmd.Flags().BoolVar(&pauseUntilPlugged, "until-plugged", false, "Pause until the charger is connected")
	pauseCmd.MarkFlagsMutuallyExclusive("for", "until-plugged")
}

func pauseController() (*pause.Controller, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return pause.NewController(settings.PauseFile), nil
}

func runPause(cmd *cobra.Command, args []string) error {
	c, err := pauseController()
	if err != nil {
		return err
	}

	if pauseUntilPlugged {
		if err := c.PauseUntilCharging(); err != nil {
			return err
		}
	} else {
		if pauseFor <= 0 {
			return fmt.Errorf("--for must be positive")
		}
		if err := c.PauseFor(pauseFor); err != nil {
			return err
		}
	}

	state, err := c.Load()
	if err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(state.Describe(time.Now()) + "."))
	return nil
}

func runResume(cmd *cobra.Command, args []string) error {
	c, err := pauseController()
	if err != nil {
		return err
	}
	if err := c.Resume(); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Monitoring resumed."))
	return nil
}
