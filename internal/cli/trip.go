package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relicta-tech/faultline/pkg/fault"
)

var (
	tripKind    string
	tripMessage string
)

// tripCmd raises a synthetic fault and runs it through the configured chain,
// end to end. It is the fastest way to verify a faultline configuration
// actually delivers reports.
var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Raise a synthetic fault and report it through the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		hook := buildHook(cfg, logger)

		guarded := hook.Protect(func() error {
			switch tripKind {
			case "device":
				panic(&fault.Error{
					Kind:    fault.KindDevice,
					Message: tripMessage,
					Causes: []fault.Cause{
						{
							Origin:      "devsrv/motor.Move\n\tmotor.go:42",
							Reason:      "RT_MotionFault",
							Description: tripMessage,
						},
						{
							Origin:      "devsrv/axis.Limit",
							Reason:      "API_LimitReached",
							Description: "axis at hard limit",
						},
					},
				})
			case "error":
				panic(fmt.Errorf("%s", tripMessage))
			default:
				panic(tripMessage)
			}
		})

		if err := guarded(); err != nil {
			return err
		}
		fmt.Println(styles.Success.Render("✓") + " synthetic fault dispatched through the chain")
		return nil
	},
}

func init() {
	tripCmd.Flags().StringVar(&tripKind, "kind", "panic", "fault kind to raise (panic, error, device)")
	tripCmd.Flags().StringVar(&tripMessage, "message", "synthetic fault from 'faultline trip'", "fault message")
}
