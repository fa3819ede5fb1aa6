package cli

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
)

var daemonNoTray bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the ChargeWatch daemon",
	Long:  `Manage the chargewatchd background process.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonStartCmd.Flags().BoolVar(&daemonNoTray, "no-tray", false, "Start without the system tray icon")

	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	info, err := config.RunningDaemon()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if info != nil {
		fmt.Printf("Daemon is already running (PID %d).\n", info.PID)
		return nil
	}

	fmt.Print("Starting daemon...")
	if err := startDaemon(daemonNoTray); err != nil {
		fmt.Println()
		return err
	}

	freshInfo, err := config.RunningDaemon()
	if err != nil || freshInfo == nil {
		fmt.Println(" started.")
		return nil
	}

	fmt.Printf(" started (PID %d).\n", freshInfo.PID)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	info, err := config.RunningDaemon()
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	tray := "no"
	if info.HasTray() {
		tray = "yes"
	}
	version := info.AppVersion
	if version == "" {
		version = "unknown"
	}

	fmt.Println("Daemon is running.")
	fmt.Printf("  PID:        %d\n", info.PID)
	fmt.Printf("  Mode:       %s\n", info.Mode)
	fmt.Printf("  Tray:       %s\n", tray)
	fmt.Printf("  Version:    %s\n", version)
	fmt.Printf("  Uptime:     %s\n", info.Uptime(time.Now()))
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	info, err := config.RunningDaemon()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if info == nil {
		fmt.Println("Daemon is not running.")
		return nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return fmt.Errorf("failed to find daemon process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		current, err := config.RunningDaemon()
		if err == nil && current == nil {
			fmt.Println("Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}
