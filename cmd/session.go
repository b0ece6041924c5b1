package cmd

import (
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/spf13/cobra"
)

var SessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage partner sessions",
	Long:  `Provides seed-phrase login, token validation, and logout for enrolled partners. Sessions are stateless signed tokens bound to one wallet.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing session command with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	SessionCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SessionCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	SessionCmd.AddCommand(sessionLoginCmd)
	SessionCmd.AddCommand(sessionValidateCmd)
	SessionCmd.AddCommand(sessionLogoutCmd)
}
