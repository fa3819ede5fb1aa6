// Package cli implements the chargewatch CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chargewatch",
	Short: "Control the ChargeWatch battery monitor",
	Long: `ChargeWatch watches the battery charge level in the background and
reminds you to plug in or unplug the charger. This command pauses and
resumes alerts, shows the current status and reads the activity log.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}
