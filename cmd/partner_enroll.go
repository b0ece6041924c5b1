package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var (
	enrollAlias     string
	enrollSecondary string
)

func init() {
	partnerEnrollCmd.Flags().StringVar(&enrollAlias, "alias", "", "display alias for the partner (3-50 characters)")
	partnerEnrollCmd.Flags().StringVar(&enrollSecondary, "secondary", "", "optional secondary wallet address")
	_ = partnerEnrollCmd.MarkFlagRequired("alias")
}

var partnerEnrollCmd = &cobra.Command{
	Use:   "enroll <wallet>",
	Short: "Enrolls a wallet into the partner collective",
	Long: `Adds a wallet to the roster and queues it for seed distribution. The
collective is capped; enrollment fails once every seat in the roster is
taken.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting partner enroll command")
		spinner, cleanup := startSpinner("Enrolling partner...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		partner, err := rt.partners.Enroll(args[0], enrollAlias, enrollSecondary)
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrDuplicatePartner):
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is already enrolled"
				return nil
			case errors.Is(err, cerrors.ErrCapacityExceeded):
				spinner.FinalMSG = color.RedString("✗") + " The collective is full: " + err.Error()
				return nil
			case errors.Is(err, cerrors.ErrInvalidAlias):
				spinner.FinalMSG = color.RedString("✗") + " Alias must be 3-50 characters"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to enroll partner: %v", err)
		}

		Logger.Infof("Partner %s enrolled as %s", partner.Wallet, partner.Alias)
		spinner.FinalMSG = color.GreenString("✓") + " Enrolled " + color.CyanString(partner.Alias) + " (" + partner.Wallet + ")\n" +
			color.CyanString("→") + " Deliver the recovery phrase, then run " + color.YellowString("covenant partner distribute "+partner.Wallet)
		return nil
	},
}
