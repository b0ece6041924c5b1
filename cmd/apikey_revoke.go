package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke <wallet> <key-id>",
	Short: "Revokes an API key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey revoke command")
		spinner, cleanup := startSpinner("Revoking API key...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		if err := rt.keys.Revoke(args[0], args[1]); err != nil {
			switch {
			case errors.Is(err, cerrors.ErrKeyNotFound):
				spinner.FinalMSG = color.RedString("✗") + " No key " + color.YellowString(args[1]) + " for wallet " + color.YellowString(args[0])
				return nil
			case errors.Is(err, cerrors.ErrKeyRevoked):
				spinner.FinalMSG = color.RedString("✗") + " Key " + color.YellowString(args[1]) + " is already revoked"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to revoke API key: %v", err)
		}

		Logger.Infof("API key %s revoked", args[1])
		spinner.FinalMSG = color.GreenString("✓") + " Key " + color.YellowString(args[1]) + " revoked"
		return nil
	},
}
