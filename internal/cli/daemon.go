package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chargewatch/chargewatch/internal/config"
)

const daemonBinary = "chargewatchd"

// startDaemon starts the daemon process in the background.
func startDaemon(foreground bool) error {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	var args []string
	if foreground {
		args = append(args, "--foreground")
	}
	cmd := exec.Command(daemonPath, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	// Wait for daemon to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		info, err := config.RunningDaemon()
		if err == nil && info != nil {
			return nil
		}
	}

	return fmt.Errorf("daemon failed to start within timeout")
}

// findDaemonBinary locates the chargewatchd binary.
func findDaemonBinary() (string, error) {
	path, err := exec.LookPath(daemonBinary)
	if err == nil {
		return path, nil
	}

	// Try next to the current executable
	execPath, err := os.Executable()
	if err == nil {
		daemonPath := filepath.Join(filepath.Dir(execPath), daemonBinary)
		if _, err := os.Stat(daemonPath); err == nil {
			return daemonPath, nil
		}
	}

	// Try build directory
	if _, err := os.Stat("./build/" + daemonBinary); err == nil {
		return "./build/" + daemonBinary, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}
