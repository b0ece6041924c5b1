package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var CredentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage encrypted team member credentials",
	Long: `Provides encrypted storage of operational credentials (SSH keys, server
access) for team members, keyed by wallet address. Payloads are sealed with
XChaCha20-Poly1305; the passphrase comes from COVENANT_CREDENTIAL_KEY or an
interactive prompt.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing credential command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	CredentialCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	CredentialCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	CredentialCmd.AddCommand(credentialAddCmd)
	CredentialCmd.AddCommand(credentialGetCmd)
	CredentialCmd.AddCommand(credentialListCmd)
	CredentialCmd.AddCommand(credentialStatusCmd)
	CredentialCmd.AddCommand(credentialRemoveCmd)
}
