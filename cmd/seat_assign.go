package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var seatAssignCmd = &cobra.Command{
	Use:   "assign <wallet> <seat-name>",
	Short: "Assigns a governance seat to an acknowledged partner",
	Long: `Seats a partner. The partner must have acknowledged the recovery phrase,
the seat must be vacant or revoked, and a partner can hold at most one
active seat.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seat assign command")
		spinner, cleanup := startSpinner("Assigning seat...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		seat, err := rt.partners.AssignSeat(args[0], args[1])
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrPartnerNotFound):
				spinner.FinalMSG = color.RedString("✗") + " Wallet " + color.YellowString(args[0]) + " is not enrolled"
				return nil
			case errors.Is(err, cerrors.ErrNotEligible):
				spinner.FinalMSG = color.RedString("✗") + " Partner has not acknowledged the recovery phrase\n" +
					color.CyanString("→") + " Run " + color.YellowString("covenant partner acknowledge "+args[0]) + " first"
				return nil
			case errors.Is(err, cerrors.ErrSeatOccupied):
				spinner.FinalMSG = color.RedString("✗") + " Seat " + color.YellowString(args[1]) + " is already occupied\n" +
					color.CyanString("→") + " Revoke it first with " + color.YellowString("covenant seat revoke "+args[1])
				return nil
			}
			return Logger.ErrorfAndReturn("failed to assign seat: %v", err)
		}

		Logger.Infof("Seat %s assigned to %s", seat.Name, seat.Occupant)
		spinner.FinalMSG = color.GreenString("✓") + " Seat " + color.CyanString(seat.Name) + " assigned to " + color.CyanString(seat.OccupantAlias) + "\n" +
			"    credential token: " + color.YellowString(seat.CredentialToken)
		return nil
	},
}
