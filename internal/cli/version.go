package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relicta-tech/faultline/internal/version"
)

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := versionInfo.Version
		if v == "" || v == "dev" {
			v = version.Get()
		}
		fmt.Printf("faultline %s\n", v)
		if versionInfo.Commit != "" && versionInfo.Commit != "none" {
			fmt.Printf("  commit: %s\n", versionInfo.Commit)
		}
		if versionInfo.Date != "" && versionInfo.Date != "unknown" {
			fmt.Printf("  built:  %s\n", versionInfo.Date)
		}
	},
}
