package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var (
	updateTrustBurned float64
	updateTally       float64
)

func init() {
	partnerUpdateCmd.Flags().Float64Var(&updateTrustBurned, "trust-burned", 0, "absolute total of burned trust")
	partnerUpdateCmd.Flags().Float64Var(&updateTally, "tally", 0, "absolute total of accumulated tally")
}

var partnerUpdateCmd = &cobra.Command{
	Use:   "update <wallet>",
	Short: "Updates a partner's governance totals",
	Long: `Sets a partner's burned-trust and tally totals. The values are absolute
totals, not increments: passing --trust-burned 30 after a total of 50
regresses the total to 30. A zero value leaves the current total unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner update command")
		spinner, cleanup := startSpinner("Updating governance totals...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		partner, err := rt.partners.UpdateStatus(args[0], updateTrustBurned, updateTally)
		if err != nil {
			if errors.Is(err, cerrors.ErrPartnerNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is not enrolled"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to update partner: %v", err)
		}

		Logger.Infof("Governance totals updated for %s", partner.Wallet)
		spinner.FinalMSG = color.GreenString("✓") + " Updated " + color.CyanString(partner.Alias) + "\n" +
			fmt.Sprintf("    trust burned: %.2f\n", partner.TrustBurned) +
			fmt.Sprintf("    tally:        %.2f", partner.TallyAccumulated)
		return nil
	},
}
