package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cerrors "github.com/convergent-intelligence/convergence-protocol-sub000/internal/errors"
)

var credentialGetCmd = &cobra.Command{
	Use:   "get <wallet>",
	Short: "Decrypts and displays a member's credentials",
	Long: `Decrypts the stored payload for an active member. Inactive members are
refused before any decryption happens; every successful access is recorded
in the security log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting credential get command")

		rt, err := newRuntime()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}
		manager, err := rt.credentialManager()
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Decrypting credentials...")
		defer cleanup()

		member, err := manager.GetCredentials(args[0])
		if err != nil {
			switch {
			case errors.Is(err, cerrors.ErrMemberNotFound):
				spinner.FinalMSG = color.RedString("✗") + " No credentials stored for " + color.YellowString(args[0])
				return nil
			case errors.Is(err, cerrors.ErrCredentialsNotActive):
				spinner.FinalMSG = color.RedString("✗") + " Credentials for " + color.YellowString(args[0]) + " are inactive\n" +
					color.CyanString("→") + " Reactivate with " + color.YellowString("covenant credential status "+args[0]+" active")
				return nil
			case errors.Is(err, cerrors.ErrDecryptFailed):
				spinner.FinalMSG = color.RedString("✗") + " Decryption failed\n" +
					color.CyanString("→") + " Check the credential passphrase"
				return nil
			}
			return Logger.ErrorfAndReturn("failed to get credentials: %v", err)
		}

		msg := color.GreenString("✓") + " Credentials for " + color.CyanString(member.Wallet) + "\n" +
			"    role:   " + member.Role + "\n"
		if member.Credentials.ServerAddress != "" {
			msg += "    server: " + member.Credentials.ServerAddress +
				fmt.Sprintf(":%d", member.Credentials.Port) + "\n"
		}
		if member.Credentials.Username != "" {
			msg += "    user:   " + member.Credentials.Username + "\n"
		}
		if member.Credentials.Instructions != "" {
			msg += "    notes:  " + member.Credentials.Instructions + "\n"
		}
		if member.Credentials.SSHKey != "" {
			msg += "\n" + member.Credentials.SSHKey
		}
		spinner.FinalMSG = msg
		return nil
	},
}
