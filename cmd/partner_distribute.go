package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var distributeBy string

func init() {
	partnerDistributeCmd.Flags().StringVar(&distributeBy, "by", "", "wallet address of the distributing custodian")
	_ = partnerDistributeCmd.MarkFlagRequired("by")
}

var partnerDistributeCmd = &cobra.Command{
	Use:   "distribute <wallet>",
	Short: "Records that the recovery phrase was delivered to a partner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner distribute command")
		spinner, cleanup := startSpinner("Recording distribution...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if err := rt.partners.RecordDistribution(args[0], distributeBy); err != nil {
			if errors.Is(err, cerrors.ErrPartnerNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is not enrolled\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant partner enroll") + " first"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to record distribution: %v", err)
		}

		Logger.Infof("Distribution recorded for %s", args[0])
		spinner.FinalMSG = color.GreenString("✓") + " Distribution recorded for " + color.CyanString(args[0]) + "\n" +
			color.CyanString("→") + " The partner confirms with " + color.YellowString("covenant partner acknowledge "+args[0])
		return nil
	},
}
