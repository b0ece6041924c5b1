package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var apikeyVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verifies a raw API token and counts it against its rate limits",
	Long: `Authenticates a bearer token and applies the per-minute and per-day
sliding windows. A verified call counts as one request; exceeding either
ceiling rejects the call and raises a high-severity security event.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey verify command")
		spinner, cleanup := startSpinner("Verifying token...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		scope, err := rt.keys.Verify(args[0])
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrInvalidAPIKey):
				spinner.FinalMSG = color.RedString("✗") + " Token not recognized"
				return nil
			case errors.Is(err, cerrors.ErrKeyRevoked):
				spinner.FinalMSG = color.RedString("✗") + " This key has been revoked"
				return nil
			case errors.Is(err, cerrors.ErrKeyExpired):
				spinner.FinalMSG = color.RedString("✗") + " This key has expired"
				return nil
			case errors.Is(err, cerrors.ErrRateLimited):
				spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
				return nil
			}
			return Logger.ErrorfAndReturn("failed to verify token: %v", err)
		}

		Logger.Infof("Token verified for agent %s", scope.Agent)
		spinner.FinalMSG = color.GreenString("✓") + " Token valid\n" +
			"    key id: " + scope.KeyID + "\n" +
			"    wallet: " + scope.Wallet + "\n" +
			"    agent:  " + color.CyanString(scope.Agent) + "\n" +
			fmt.Sprintf("    perms:  ceremony=%t donations=%t burn_trust=%t withdraw=%t mint=%t",
				scope.Permissions.Ceremony, scope.Permissions.Donations,
				scope.Permissions.BurnTrust, scope.Permissions.Withdraw, scope.Permissions.Mint)
		return nil
	},
}
