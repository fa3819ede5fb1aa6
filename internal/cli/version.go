package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", styleBrand.Render("ChargeWatch"), styleVersion.Render(buildinfo.Version))
		fmt.Printf("  %s %s\n", styleLabel.Render("Commit: "), styleValue.Render(buildinfo.CommitHash))
		fmt.Printf("  %s %s\n", styleLabel.Render("OS/Arch:"), styleValue.Render(runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Printf("  %s %s\n", styleLabel.Render("Go:     "), styleValue.Render(runtime.Version()))
	},
}
