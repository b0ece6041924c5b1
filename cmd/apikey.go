package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var ApikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage agent API keys",
	Long: `Provides issuance, verification, revocation, and regeneration of API keys
for automated agents. Raw tokens are shown once at creation; only their
SHA-256 hashes are stored. Verification applies per-minute and per-day
sliding rate limits.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing apikey command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	ApikeyCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ApikeyCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	ApikeyCmd.AddCommand(apikeyCreateCmd)
	ApikeyCmd.AddCommand(apikeyVerifyCmd)
	ApikeyCmd.AddCommand(apikeyRevokeCmd)
	ApikeyCmd.AddCommand(apikeyRegenerateCmd)
	ApikeyCmd.AddCommand(apikeyListCmd)
	ApikeyCmd.AddCommand(apikeyStatsCmd)
	ApikeyCmd.AddCommand(apikeyLimitsCmd)
	ApikeyCmd.AddCommand(apikeyPermissionsCmd)
}
