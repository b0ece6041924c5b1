package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/apikeys"
	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var (
	permCeremony  bool
	permDonations bool
	permBurnTrust bool
	permWithdraw  bool
	permMint      bool
)

func init() {
	apikeyPermissionsCmd.Flags().BoolVar(&permCeremony, "ceremony", true, "allow ceremony operations")
	apikeyPermissionsCmd.Flags().BoolVar(&permDonations, "donations", true, "allow donation operations")
	apikeyPermissionsCmd.Flags().BoolVar(&permBurnTrust, "burn-trust", true, "allow trust burning")
	apikeyPermissionsCmd.Flags().BoolVar(&permWithdraw, "withdraw", false, "allow withdrawals")
	apikeyPermissionsCmd.Flags().BoolVar(&permMint, "mint", false, "allow minting")
}

var apikeyPermissionsCmd = &cobra.Command{
	Use:   "permissions <wallet> <key-id>",
	Short: "Replaces a key's permission set",
	Long: `Sets the full permission set for one key. All five permissions take the
flag values; flags left at their defaults apply the conservative baseline
(withdraw and mint off).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apikey permissions command")
		spinner, cleanup := startSpinner("Updating permissions...")
		defer cleanup()

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		perms := apikeys.Permissions{
			Ceremony:  permCeremony,
			Donations: permDonations,
			BurnTrust: permBurnTrust,
			Withdraw:  permWithdraw,
			Mint:      permMint,
		}
		if err := rt.keys.UpdatePermissions(args[0], args[1], perms); err != nil {
			if errors.Is(err, cerrors.ErrKeyNotFound) {
				spinner.FinalMSG = color.RedString("✗") + " No key " + color.YellowString(args[1]) + " for wallet " + color.YellowString(args[0])
				return nil
			}
			return Logger.ErrorfAndReturn("failed to update permissions: %v", err)
		}

		Logger.Infof("Permissions updated for key %s", args[1])
		spinner.FinalMSG = color.GreenString("✓") + " Permissions for " + color.YellowString(args[1]) + " updated"
		return nil
	},
}
