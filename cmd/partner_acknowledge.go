package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var acknowledgeStatement string

func init() {
	partnerAcknowledgeCmd.Flags().StringVar(&acknowledgeStatement, "statement", "", "optional statement recorded with the acknowledgement")
}

var partnerAcknowledgeCmd = &cobra.Command{
	Use:   "acknowledge <wallet>",
	Short: "Records a partner's confirmation that they secured the phrase",
	Long: `Marks the partner as having received and secured the recovery phrase.
Acknowledgement is the precondition for holding a governance seat and for
session login.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner acknowledge command")
		spinner, cleanup := startSpinner("Recording acknowledgement...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if err := rt.partners.Acknowledge(args[0], acknowledgeStatement); err != nil {
			if errors.Is(err, cerrors.ErrPartnerNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is not enrolled"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to record acknowledgement: %v", err)
		}

		Logger.Infof("Acknowledgement recorded for %s", args[0])
		spinner.FinalMSG = color.GreenString("✓") + " Acknowledgement recorded for " + color.CyanString(args[0]) + "\n" +
			color.CyanString("→") + " The partner is now eligible for a seat: " + color.YellowString("covenant seat assign")
		return nil
	},
}
