package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
)

var (
	configureMaximum  int
	configureMinimum  int
	configureInterval int
	configureIcon     string
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Show or change the alert thresholds",
	Long: `Show or change the settings stored in ~/.chargewatch/settings.yaml.

Without flags the stored settings are printed. Changes take effect the
next time the daemon starts.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().IntVar(&configureMaximum, "maximum", 0, "Charge level (%) that triggers the unplug alert")
	configureCmd.Flags().IntVar(&configureMinimum, "minimum", 0, "Charge level (%) that triggers the plug-in alert")
	configureCmd.Flags().IntVar(&configureInterval, "interval", 0, "Polling interval in seconds (minimum 30)")
	configureCmd.Flags().StringVar(&configureIcon, "icon", "", "Notification icon path")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadStoredSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("maximum") {
		settings.Maximum = configureMaximum
		changed = true
	}
	if flags.Changed("minimum") {
		settings.Minimum = configureMinimum
		changed = true
	}
	if flags.Changed("interval") {
		settings.Interval = configureInterval
		changed = true
	}
	if flags.Changed("icon") {
		settings.Icon = configureIcon
		changed = true
	}

	if changed {
		if err := settings.Validate(); err != nil {
			return err
		}
		if err := config.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println(styleSuccess.Render("Settings saved."))
		if info, _ := config.RunningDaemon(); info != nil {
			fmt.Println(styleHint.Render("Restart the daemon to apply them: chargewatch daemon stop && chargewatch daemon start"))
		}
	}

	icon := settings.Icon
	if icon == "" {
		icon = "(default)"
	}
	fmt.Printf("%s %d%%\n", styleLabel.Render("Maximum: "), settings.Maximum)
	fmt.Printf("%s %d%%\n", styleLabel.Render("Minimum: "), settings.Minimum)
	fmt.Printf("%s %s\n", styleLabel.Render("Interval:"), settings.PollInterval())
	fmt.Printf("%s %s\n", styleLabel.Render("Icon:    "), icon)
	return nil
}
