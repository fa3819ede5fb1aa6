package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live battery view with pause controls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		return tui.Run(settings)
	},
}
