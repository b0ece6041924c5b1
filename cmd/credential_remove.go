package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var credentialRemoveCmd = &cobra.Command{
	Use:   "remove <wallet>",
	Short: "Permanently removes a member's credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential remove command")

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.credentialManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Removing credentials...")
		defer cleanup()

		if err := manager.RemoveMember(args[0]); err != nil {
			if errors.Is(err, cerrors.ErrMemberNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " No credentials stored for " + color.YellowString(args[0])
				return nil
			}
			return Logger.ErrorfAndReturn("failed to remove credentials: %v", err)
		}

		Logger.Infof("Credentials removed for %s", args[0])
		spinner.FinalMSG = color.GreenString("✓") + " Credentials removed for " + color.CyanString(args[0])
		return nil
	},
}
