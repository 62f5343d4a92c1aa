package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd validates the loaded configuration and summarizes the chain that
// would be installed.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and show the resulting chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(styles.Title.Render("Faultline configuration"))
		fmt.Printf("  app:        %s\n", cfg.App.Name)
		fmt.Printf("  sinks:      %v\n", cfg.Chain.Sinks)
		fmt.Printf("  exclusive:  %v\n", cfg.Chain.Exclusive)
		fmt.Printf("  passthrough: %v\n", cfg.Chain.Passthrough)
		fmt.Printf("  highlight:  %v", cfg.Highlight.Enabled)
		if cfg.Highlight.Enabled {
			fmt.Printf(" (style %s)", cfg.Highlight.Style)
		}
		fmt.Println()
		fmt.Printf("  webhooks:   %d configured\n", len(cfg.Webhooks))

		fmt.Println(styles.Success.Render("✓") + " configuration is valid")
		return nil
	},
}
