package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var credentialStatusCmd = &cobra.Command{
	Use:   "status <wallet> <active|inactive>",
	Short: "Activates or deactivates a member's credentials",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential status command")

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.credentialManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Updating status...")
		defer cleanup()

		member, err := manager.UpdateMemberStatus(args[0], args[1])
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrMemberNotFound):
				spinner.FinalMSG = color.RedString("✗") + " No credentials stored for " + color.YellowString(args[0])
				return nil
			case errors.Is(err, cerrors.ErrInvalidStatus):
				spinner.FinalMSG = color.RedString("✗") + " Status must be " + color.YellowString("active") + " or " + color.YellowString("inactive")
				return nil
			}
			return Logger.ErrorfAndReturn("failed to update status: %v", err)
		}

		Logger.Infof("Status for %s set to %s", member.Wallet, member.Status)
		spinner.FinalMSG = color.GreenString("✓") + " Credentials for " + color.CyanString(member.Wallet) + " are now " + color.YellowString(member.Status)
		return nil
	},
}
