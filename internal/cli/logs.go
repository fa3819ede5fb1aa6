package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/activitylog"
	"github.com/chargewatch/chargewatch/internal/config"
)

var (
	logsDate  string
	logsLabel string
	logsList  bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the activity log",
	Long:  `Show one day of the activity log (today by default), or list the days on disk.`,
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete activity log days past the retention window",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	logsCmd.Flags().StringVar(&logsDate, "date", "", "Day to show (DD-MM-YYYY, default today)")
	logsCmd.Flags().StringVar(&logsLabel, "label", activitylog.DefaultLabel, "Log file within the day")
	logsCmd.Flags().BoolVar(&logsList, "list", false, "List available days")
}

func logStore() (*activitylog.Store, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return activitylog.NewStore(settings.LogDir), nil
}

func runLogs(cmd *cobra.Command, args []string) error {
	store, err := logStore()
	if err != nil {
		return err
	}

	if logsList {
		days, err := store.Partitions()
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Println(styleHint.Render("No activity logged yet."))
			return nil
		}
		for _, day := range days {
			fmt.Println(day)
		}
		return nil
	}

	day := logsDate
	if day == "" {
		day = store.Today()
	}
	lines, err := store.ReadDay(day, logsLabel)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Println(styleHint.Render(fmt.Sprintf("No entries for %s.", day)))
		return nil
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func runPrune(cmd *cobra.Command, args []string) error {
	store, err := logStore()
	if err != nil {
		return err
	}
	removed, err := store.Prune(activitylog.RetentionDays)
	for _, name := range removed {
		fmt.Printf("%s %s\n", styleLabel.Render("removed"), name)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println(styleHint.Render("Nothing to prune."))
	}
	return nil
}
