package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var revokeReason string

func init() {
	seatRevokeCmd.Flags().StringVar(&revokeReason, "reason", "", "reason recorded with the revocation")
	_ = seatRevokeCmd.MarkFlagRequired("reason")
}

var seatRevokeCmd = &cobra.Command{
	Use:   "revoke <seat-name>",
	Short: "Revokes a governance seat and runs succession",
	Long: `Revokes a seat and immediately offers it to the highest-ranked partner
by burned trust who does not already hold an active seat. If no candidate
exists the seat stays vacant.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting seat revoke command")
		spinner, cleanup := startSpinner("Revoking seat...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		seat, err := rt.partners.RevokeSeat(args[0], revokeReason)
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrSeatNotFound):
				spinner.FinalMSG = color.RedString("✗") + " Seat " + color.YellowString(args[0]) + " does not exist"
				return nil
			case errors.Is(err, cerrors.ErrSeatRevoked):
				spinner.FinalMSG = color.RedString("✗") + " Seat " + color.YellowString(args[0]) + " is already revoked"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to revoke seat: %v", err)
		}

		if seat.Revoked {
			Logger.Infof("Seat %s revoked with no successor", seat.Name)
			spinner.FinalMSG = color.GreenString("✓") + " Seat " + color.CyanString(seat.Name) + " revoked\n" +
				color.YellowString("⚠") + " No eligible successor; the seat is vacant"
			return nil
		}

		Logger.Infof("Seat %s passed to %s", seat.Name, seat.Occupant)
		spinner.FinalMSG = color.GreenString("✓") + " Seat " + color.CyanString(seat.Name) + " revoked\n" +
			color.CyanString("→") + " Succession: seat passed to " + color.CyanString(seat.OccupantAlias) + " (" + seat.Occupant + ")"
		return nil
	},
}
